// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages printed by binaries
// built on go-confbind when a load fails.
//
// All Msg* constants are hints appended to the error itself, telling the
// operator which source to look at. Keeping them in one place ensures
// consistent wording across commands.
package app

import "github.com/MKhiriev/go-confbind/models"

const (
	// MsgCheckFile is shown when a configuration file cannot be read.
	MsgCheckFile = "check that the file exists and is readable"

	// MsgCheckSyntax is shown when a configuration file is malformed.
	MsgCheckSyntax = "check the file syntax; the top level must be a mapping"

	// MsgCheckValue is shown when an environment or flag value has the
	// wrong textual form.
	MsgCheckValue = "check the value format: booleans are true/false/1/0/yes/no, lists are comma-separated or JSON arrays"

	// MsgProvideField is shown when a required field is missing everywhere.
	MsgProvideField = "set the field in a file, the environment or on the command line"

	// MsgUnknownFlag is shown for a flag that matches no field.
	MsgUnknownFlag = "only --long-flags of known fields are accepted"

	// MsgFixType is shown when a merged value has the wrong shape.
	MsgFixType = "the value exists but has the wrong type"

	// MsgRejected is shown when a validator rejects the configuration.
	MsgRejected = "the configuration was rejected by a validation rule"

	// MsgBadField is shown when a field name cannot be mapped to a source key.
	MsgBadField = "field names may only contain letters, digits and underscores"
)

// Hint returns the operator hint for err, or "" when err is not a load
// error.
func Hint(err error) string {
	switch models.KindOf(err) {
	case models.KindIo:
		return MsgCheckFile
	case models.KindParse:
		return MsgCheckSyntax
	case models.KindCoerce:
		return MsgCheckValue
	case models.KindMissingRequired:
		return MsgProvideField
	case models.KindUnknownFlag:
		return MsgUnknownFlag
	case models.KindTypeMismatch:
		return MsgFixType
	case models.KindValidation:
		return MsgRejected
	case models.KindMapping:
		return MsgBadField
	}
	return ""
}
