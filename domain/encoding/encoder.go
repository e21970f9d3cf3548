// Package encoding maps a raw incident report onto the fixed 16-column
// feature vector the trained classifier expects. The column set and order
// are frozen by the training run; changing either invalidates the model.
package encoding

import (
	"fmt"

	"crimerisk/domain/incident"
	"crimerisk/internal/errors"
)

// Width is the exact number of feature columns.
const Width = 16

// FeatureNames is the canonical column order. The classifier is
// positional once handed a vector, so this order is load-bearing: the
// artifact's feature_names are checked against it at provisioning time.
var FeatureNames = [Width]string{
	"victim_age",
	"police_deployed",
	"latitude",
	"longitude",
	"report_hour",
	"report_day_of_week",
	"report_month",
	"victim_gender_M",
	"victim_gender_X",
	"weapon_used_Explosives",
	"weapon_used_Firearm",
	"weapon_used_Knife",
	"weapon_used_Other",
	"weapon_used_Poison",
	"weapon_used_Unknown",
	"case_closed_Yes",
}

// FeatureVector is one encoded incident, in FeatureNames order.
type FeatureVector [Width]float64

// Encode converts a report into the fixed-order feature vector. Pure:
// no I/O, no randomness, no state between calls.
//
// Reference categories fall out as all-zero dummies exactly as they did
// during training: Female AND Other both encode to zero gender dummies,
// and Blunt Object AND None both encode to zero weapon dummies. The
// conflation is inherited from the training run's column drop and is
// kept so the vector means what the model was fitted against.
func Encode(r incident.Report) (FeatureVector, error) {
	if err := r.Validate(); err != nil {
		return FeatureVector{}, errors.SchemaMismatch(err.Error())
	}

	var v FeatureVector
	v[0] = float64(r.VictimAge)
	v[1] = float64(r.PoliceDeployed)
	v[2] = r.Latitude
	v[3] = r.Longitude
	v[4] = float64(r.ReportedAt.Hour())
	v[5] = float64(dayOfWeek(r))
	v[6] = float64(int(r.ReportedAt.Month()))

	switch r.VictimGender {
	case incident.GenderMale:
		v[7] = 1
	case incident.GenderX:
		v[8] = 1
	case incident.GenderFemale, incident.GenderOther:
		// reference categories, all dummies stay zero
	default:
		return FeatureVector{}, errors.SchemaMismatch(
			fmt.Sprintf("no dummy column for victim gender %q", r.VictimGender))
	}

	switch r.WeaponUsed {
	case incident.WeaponExplosives:
		v[9] = 1
	case incident.WeaponFirearm:
		v[10] = 1
	case incident.WeaponKnife:
		v[11] = 1
	case incident.WeaponOther:
		v[12] = 1
	case incident.WeaponPoison:
		v[13] = 1
	case incident.WeaponUnknown:
		v[14] = 1
	case incident.WeaponBluntObject, incident.WeaponNone:
		// reference categories
	default:
		return FeatureVector{}, errors.SchemaMismatch(
			fmt.Sprintf("no dummy column for weapon %q", r.WeaponUsed))
	}

	if r.CaseClosed {
		v[15] = 1
	}

	return v, nil
}

// dayOfWeek returns 0=Monday .. 6=Sunday, the convention the training
// data used (Python's weekday()), not Go's Sunday-first numbering.
func dayOfWeek(r incident.Report) int {
	return (int(r.ReportedAt.Weekday()) + 6) % 7
}
