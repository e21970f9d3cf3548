// riskcli scores a single incident from a JSON file (or stdin) against
// the model artifact, without the web layer.
//
// Usage:
//
//	riskcli -model artifacts/crime_predictor_model.json incident.json
//	cat incident.json | riskcli -model artifacts/crime_predictor_model.json
//
// The incident JSON uses the same shape as POST /api/predict.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"crimerisk/adapters/forest"
	"crimerisk/app"
	"crimerisk/internal/errors"
	"crimerisk/models"
)

func main() {
	modelPath := flag.String("model", os.Getenv("MODEL_PATH"), "path to the model artifact")
	flag.Parse()

	if *modelPath == "" {
		log.Fatal("Model path is required (-model flag or MODEL_PATH)")
	}

	raw, err := readInput(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read incident: %v", err)
	}

	var submission models.IncidentSubmission
	if err := json.Unmarshal(raw, &submission); err != nil {
		log.Fatalf("Incident JSON is invalid: %v", err)
	}

	classifier, err := forest.Load(*modelPath)
	if err != nil {
		log.Fatalf("Failed to provision classifier: %v", err)
	}

	service := app.NewPredictionService(classifier, 1)

	report, err := submission.ToReport()
	if err != nil {
		log.Fatalf("%s: %v", errors.GetCode(err), err)
	}

	assessment, err := service.PredictRisk(report)
	if err != nil {
		log.Fatalf("%s: %v", errors.GetCode(err), err)
	}

	fmt.Printf("Probability of Violent Crime: %.2f%%\n", assessment.Score)
	fmt.Printf("Overall Risk: %s\n", assessment.Tier)
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
