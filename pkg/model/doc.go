// Package model defines the declarative device definitions that drive both
// config collection and snippet rendering. A Device is a list of titled
// sections; each section holds typed field descriptors. Field is a closed sum
// type over NumberField, SelectField, BooleanField and TextField, so callers
// switch on the concrete type instead of inspecting loose maps.
//
// DefaultConfig derives the initial config.Tree for a device: one nested tree
// per section keyed by the section title, holding each field's default in
// declaration order. Range metadata on NumberField is advisory; Check is the
// only validation offered.
package model
