package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/detection"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/graph/export"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/ingest/loader"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/report"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/scoring"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/service"
)

// ScanJob analyses every document under Roots and writes the batch
// document to OutDir/report.json.
type ScanJob struct {
	Service *service.Service
	Loader  *loader.Loader
	Roots   []string
	Rules   detection.Config
	Workers int
	OutDir  string
	Top     int
	Log     logrus.FieldLogger
}

func (j *ScanJob) Run(ctx context.Context) (*service.BatchResult, error) {
	log := j.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	start := time.Now()

	units, err := j.Loader.Load(ctx, j.Roots...)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	res, err := j.Service.AnalyzeBatch(ctx, units, j.Rules, j.Workers)
	if err != nil {
		return nil, err
	}

	if j.OutDir != "" {
		doc := report.NewDocument(res.Reports, res.ExitCode)
		if err := export.WriteJSON(filepath.Join(j.OutDir, "report.json"), doc); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"units":     len(units),
		"failures":  res.Failures,
		"findings":  report.Total(res.Reports),
		"exit_code": res.ExitCode,
		"elapsed":   time.Since(start).String(),
	}).Info("scan finished")
	for _, f := range scoring.Top(res.Reports, j.Top) {
		log.WithFields(logrus.Fields{
			"rule":  f.RuleID,
			"file":  f.File,
			"line":  f.StartLine,
			"score": scoring.ScoreFinding(f),
		}).Info(f.Rationale)
	}
	return res, nil
}
