package models

import (
	"testing"

	"crimerisk/domain/incident"
	"crimerisk/internal/errors"
)

func validSubmission() IncidentSubmission {
	return IncidentSubmission{
		Latitude:       28.70,
		Longitude:      77.10,
		ReportDate:     "2023-06-14",
		ReportTime:     "10:30",
		VictimAge:      35,
		PoliceDeployed: 15,
		VictimGender:   "Female",
		WeaponUsed:     "Firearm",
		CaseClosed:     "No",
	}
}

func TestToReport_Valid(t *testing.T) {
	report, err := validSubmission().ToReport()
	if err != nil {
		t.Fatalf("ToReport failed: %v", err)
	}

	if report.VictimGender != incident.GenderFemale {
		t.Errorf("gender = %q", report.VictimGender)
	}
	if report.WeaponUsed != incident.WeaponFirearm {
		t.Errorf("weapon = %q", report.WeaponUsed)
	}
	if report.CaseClosed {
		t.Error("case should be open")
	}
	if report.ReportedAt.Hour() != 10 || report.ReportedAt.Minute() != 30 {
		t.Errorf("reported at = %v", report.ReportedAt)
	}
	if got := int(report.ReportedAt.Month()); got != 6 {
		t.Errorf("month = %d, want 6", got)
	}
}

func TestToReport_SchemaMismatches(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*IncidentSubmission)
	}{
		{"empty date", func(s *IncidentSubmission) { s.ReportDate = "" }},
		{"bad date format", func(s *IncidentSubmission) { s.ReportDate = "14/06/2023" }},
		{"bad time", func(s *IncidentSubmission) { s.ReportTime = "half past ten" }},
		{"bad case status", func(s *IncidentSubmission) { s.CaseClosed = "maybe" }},
		{"unknown weapon", func(s *IncidentSubmission) { s.WeaponUsed = "Slingshot" }},
		{"unknown gender", func(s *IncidentSubmission) { s.VictimGender = "N/A" }},
		{"age out of range", func(s *IncidentSubmission) { s.VictimAge = 150 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submission := validSubmission()
			tt.mutate(&submission)
			_, err := submission.ToReport()
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errors.GetCode(err); code != errors.CodeSchemaMismatch {
				t.Errorf("error code = %s, want %s", code, errors.CodeSchemaMismatch)
			}
		})
	}
}

func TestDefaultSubmission(t *testing.T) {
	s := DefaultSubmission()
	if _, err := s.ToReport(); err != nil {
		t.Fatalf("default submission does not survive its own validation: %v", err)
	}
	if s.Latitude != 28.70 || s.Longitude != 77.10 {
		t.Errorf("default coordinates = (%v, %v)", s.Latitude, s.Longitude)
	}
}
