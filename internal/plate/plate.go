// Package plate checks mainland license plates against the two formats the
// lot accepts: standard seven character plates and eight character new
// energy plates.
package plate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tag is the struct tag name ValidateField is registered under.
const Tag = "plate"

type Kind string

const (
	KindStandard  Kind = "standard"
	KindNewEnergy Kind = "new_energy"
	KindUnknown   Kind = ""
)

const (
	provinces     = "京津沪渝冀豫云辽黑湘皖鲁新苏浙赣鄂桂甘晋蒙陕吉闽贵粤青藏川宁琼使领"
	issuingLetter = "A-HJ-NP-Z"
	alnum         = "A-HJ-NP-Z0-9" // I and O are never issued
	suffixChars   = "挂学警港澳"
)

var (
	standardPattern  = regexp.MustCompile(`^[` + provinces + `][` + issuingLetter + `][` + alnum + `]{4}[` + alnum + suffixChars + `]$`)
	newEnergyPattern = regexp.MustCompile(`^[` + provinces + `][` + issuingLetter + `][D-F][` + alnum + `]{5}$`)
)

// Normalize trims surrounding whitespace and upper-cases latin letters.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Valid reports whether s matches either plate format. It does not normalize.
func Valid(s string) bool {
	return Classify(s) != KindUnknown
}

func Classify(s string) Kind {
	switch {
	case standardPattern.MatchString(s):
		return KindStandard
	case newEnergyPattern.MatchString(s):
		return KindNewEnergy
	default:
		return KindUnknown
	}
}

// ValidateField is a validator.Func for request bodies. The field is
// normalized before it is checked.
func ValidateField(fl validator.FieldLevel) bool {
	return Valid(Normalize(fl.Field().String()))
}
