// Package incident defines the raw incident report model fed into the
// risk prediction pipeline.
package incident

import (
	"fmt"
	"time"
)

// Gender is the reported victim gender category.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderOther  Gender = "Other"
	GenderX      Gender = "X"
	GenderFemale Gender = "Female"
)

// Weapon is the reported weapon category.
type Weapon string

const (
	WeaponBluntObject Weapon = "Blunt Object"
	WeaponExplosives  Weapon = "Explosives"
	WeaponFirearm     Weapon = "Firearm"
	WeaponKnife       Weapon = "Knife"
	WeaponNone        Weapon = "None"
	WeaponOther       Weapon = "Other"
	WeaponPoison      Weapon = "Poison"
	WeaponUnknown     Weapon = "Unknown"
)

// Genders lists the accepted victim gender values in form display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderOther, GenderX, GenderFemale}
}

// Weapons lists the accepted weapon values in form display order.
func Weapons() []Weapon {
	return []Weapon{
		WeaponBluntObject, WeaponExplosives, WeaponFirearm, WeaponKnife,
		WeaponNone, WeaponOther, WeaponPoison, WeaponUnknown,
	}
}

// Report carries the situational attributes of a single reported incident.
// It lives for one submission: validated, encoded, then discarded.
type Report struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	ReportedAt     time.Time `json:"reported_at"`
	VictimAge      int       `json:"victim_age"`
	PoliceDeployed int       `json:"police_deployed"`
	VictimGender   Gender    `json:"victim_gender"`
	WeaponUsed     Weapon    `json:"weapon_used"`
	CaseClosed     bool      `json:"case_closed"`
}

// Validate checks every field against its documented domain. Out-of-range
// numerics and unrecognized categories are rejected, never defaulted.
func (r Report) Validate() error {
	if r.Latitude < -90 || r.Latitude > 90 {
		return fmt.Errorf("latitude %.4f outside [-90, 90]", r.Latitude)
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return fmt.Errorf("longitude %.4f outside [-180, 180]", r.Longitude)
	}
	if r.ReportedAt.IsZero() {
		return fmt.Errorf("report date/time is required")
	}
	if r.VictimAge < 0 || r.VictimAge > 100 {
		return fmt.Errorf("victim age %d outside [0, 100]", r.VictimAge)
	}
	if r.PoliceDeployed < 1 || r.PoliceDeployed > 50 {
		return fmt.Errorf("police deployed %d outside [1, 50]", r.PoliceDeployed)
	}
	if !validGender(r.VictimGender) {
		return fmt.Errorf("unrecognized victim gender %q", r.VictimGender)
	}
	if !validWeapon(r.WeaponUsed) {
		return fmt.Errorf("unrecognized weapon %q", r.WeaponUsed)
	}
	return nil
}

func validGender(g Gender) bool {
	switch g {
	case GenderMale, GenderOther, GenderX, GenderFemale:
		return true
	}
	return false
}

func validWeapon(w Weapon) bool {
	switch w {
	case WeaponBluntObject, WeaponExplosives, WeaponFirearm, WeaponKnife,
		WeaponNone, WeaponOther, WeaponPoison, WeaponUnknown:
		return true
	}
	return false
}
