package incident

import (
	"testing"
	"time"
)

func TestValidate_AcceptsAllCategoryCombinations(t *testing.T) {
	for _, g := range Genders() {
		for _, w := range Weapons() {
			r := Report{
				Latitude:       28.70,
				Longitude:      77.10,
				ReportedAt:     time.Date(2023, time.June, 14, 10, 0, 0, 0, time.UTC),
				VictimAge:      35,
				PoliceDeployed: 15,
				VictimGender:   g,
				WeaponUsed:     w,
			}
			if err := r.Validate(); err != nil {
				t.Errorf("gender %s / weapon %s rejected: %v", g, w, err)
			}
		}
	}
}

func TestValidate_BoundaryValues(t *testing.T) {
	base := Report{
		Latitude:       90,
		Longitude:      -180,
		ReportedAt:     time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		VictimAge:      0,
		PoliceDeployed: 1,
		VictimGender:   GenderX,
		WeaponUsed:     WeaponNone,
	}
	if err := base.Validate(); err != nil {
		t.Errorf("boundary report rejected: %v", err)
	}

	base.VictimAge = 100
	base.PoliceDeployed = 50
	if err := base.Validate(); err != nil {
		t.Errorf("upper boundary report rejected: %v", err)
	}
}
