// Package models holds the transport-level DTOs shared by the web UI,
// the JSON API, and the CLI.
package models

import (
	"fmt"
	"time"

	"crimerisk/domain/incident"
	"crimerisk/internal/errors"
)

// IncidentSubmission is a raw prediction request as submitted over a
// form, JSON body, or CLI file: dates and categories arrive as strings
// and are resolved into a domain report by ToReport.
type IncidentSubmission struct {
	Latitude       float64 `json:"latitude" form:"latitude"`
	Longitude      float64 `json:"longitude" form:"longitude"`
	ReportDate     string  `json:"report_date" form:"report_date"` // YYYY-MM-DD
	ReportTime     string  `json:"report_time" form:"report_time"` // HH:MM
	VictimAge      int     `json:"victim_age" form:"victim_age"`
	PoliceDeployed int     `json:"police_deployed" form:"police_deployed"`
	VictimGender   string  `json:"victim_gender" form:"victim_gender"`
	WeaponUsed     string  `json:"weapon_used" form:"weapon_used"`
	CaseClosed     string  `json:"case_closed" form:"case_closed"` // Yes / No
}

// ToReport resolves the submission into a validated domain report.
// Missing or malformed fields are schema mismatches: the fixed-order
// feature vector cannot be built from them, so the submission is
// rejected rather than defaulted.
func (s IncidentSubmission) ToReport() (incident.Report, error) {
	var report incident.Report

	date, err := time.Parse("2006-01-02", s.ReportDate)
	if err != nil {
		return report, errors.SchemaMismatch(
			fmt.Sprintf("report_date %q is not YYYY-MM-DD", s.ReportDate))
	}
	clock, err := time.Parse("15:04", s.ReportTime)
	if err != nil {
		return report, errors.SchemaMismatch(
			fmt.Sprintf("report_time %q is not HH:MM", s.ReportTime))
	}

	var closed bool
	switch s.CaseClosed {
	case "Yes":
		closed = true
	case "No":
		closed = false
	default:
		return report, errors.SchemaMismatch(
			fmt.Sprintf("case_closed %q, expected Yes or No", s.CaseClosed))
	}

	report = incident.Report{
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		ReportedAt: time.Date(date.Year(), date.Month(), date.Day(),
			clock.Hour(), clock.Minute(), 0, 0, time.UTC),
		VictimAge:      s.VictimAge,
		PoliceDeployed: s.PoliceDeployed,
		VictimGender:   incident.Gender(s.VictimGender),
		WeaponUsed:     incident.Weapon(s.WeaponUsed),
		CaseClosed:     closed,
	}

	if err := report.Validate(); err != nil {
		return incident.Report{}, errors.SchemaMismatch(err.Error())
	}
	return report, nil
}

// DefaultSubmission returns the form's initial values: the New Delhi
// example the model card documents.
func DefaultSubmission() IncidentSubmission {
	now := time.Now()
	return IncidentSubmission{
		Latitude:       28.70,
		Longitude:      77.10,
		ReportDate:     now.Format("2006-01-02"),
		ReportTime:     now.Format("15:04"),
		VictimAge:      35,
		PoliceDeployed: 15,
		VictimGender:   string(incident.GenderFemale),
		WeaponUsed:     string(incident.WeaponFirearm),
		CaseClosed:     "No",
	}
}
