// Package catalog loads device definitions from JSON or YAML files and ships
// the built-in TalonFX and CANcoder definitions as an embedded filesystem.
//
// Each file describes one device:
//
//	key: cancoder
//	label: CANcoder
//	rootName: CANcoderConfiguration
//	sections:
//	  - title: Sensor
//	    fields:
//	      - type: number
//	        key: magnetOffset
//	        defaultValue: 0
//
// Field `type` selects the descriptor (number, select, boolean, text). Helper,
// summary and description text is reduced to plain text with a strict
// bluemonday policy. Every definition is validated before it is stored.
package catalog
