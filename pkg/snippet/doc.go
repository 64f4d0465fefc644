// Package snippet renders a config.Tree as a Kotlin builder-style object
// initializer, the form accepted by CTRE Phoenix configuration classes:
//
//	TalonFXConfiguration().apply {
//	    CurrentLimitsConfigs = CurrentLimits().apply {
//	        StatorCurrentLimit = 120.0
//	    }
//	}
//
// Leaves follow fixed encoding rules. Booleans print as true/false. Numbers
// print with a forced ".0" when integral unless the key carries an identifier
// marker (Param, ID), in which case the plain decimal form is used. Strings
// print as enum references scoped by the key (`<key>Value.<value>`) after
// whitespace runs are collapsed into underscores. Nested trees open a new
// `.apply` block whose type name drops a trailing "Configs".
//
// Rendering is total over well-formed trees and keeps no state between calls.
package snippet
