package reporting

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/spboyer/versus/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one report.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one quality gate, or to one metric when no gates are set.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
}

// JUnitFailure represents a failed quality gate.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a report and its gate results to JUnit XML format.
// Without gate results every metric becomes a passing test case so the values
// still show up in CI.
func ConvertToJUnit(report *models.Report, gates []GateResult) *JUnitTestSuites {
	classname := "versus." + string(report.Mode)

	var cases []JUnitTestCase
	failures := 0
	if len(gates) > 0 {
		for _, g := range gates {
			tc := JUnitTestCase{Name: g.Name(), Classname: classname}
			if !g.Passed {
				failures++
				tc.Failure = &JUnitFailure{
					Message: g.Message(),
					Type:    "GateFailure",
					Body:    fmt.Sprintf("%s for %s is %.4f, limit %s %.4f\n", g.Metric, g.Model, g.Value, g.Bound, g.Limit),
				}
			}
			cases = append(cases, tc)
		}
	} else {
		for _, m := range metricValues(report) {
			cases = append(cases, JUnitTestCase{Name: m.name, Classname: classname})
		}
	}

	suite := JUnitTestSuite{
		Name:       suiteName(report),
		Tests:      len(cases),
		Failures:   failures,
		Timestamp:  report.Timestamp().Format(time.RFC3339),
		Properties: reportProperties(report),
		TestCases:  cases,
	}

	return &JUnitTestSuites{
		Tests:      len(cases),
		Failures:   failures,
		TestSuites: []JUnitTestSuite{suite},
	}
}

// WriteJUnitXML writes JUnit XML for the report to w.
func WriteJUnitXML(w io.Writer, report *models.Report, gates []GateResult) error {
	suites := ConvertToJUnit(report, gates)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	output = append(output, '\n')
	_, err = w.Write(output)
	return err
}

func suiteName(report *models.Report) string {
	if src := report.SourceName(); src != "" {
		return fmt.Sprintf("%s (%s)", src, report.Mode)
	}
	return string(report.Mode)
}

func reportProperties(report *models.Report) []JUnitProperty {
	props := []JUnitProperty{
		{Name: "id", Value: report.ReportID()},
		{Name: "mode", Value: string(report.Mode)},
	}
	switch {
	case report.Classification != nil:
		c := report.Classification
		props = append(props,
			JUnitProperty{Name: "rows", Value: fmt.Sprint(c.Rows)},
			JUnitProperty{Name: "positive_label", Value: c.Labels.Positive},
			JUnitProperty{Name: "positive_rule", Value: c.Conventions.PositiveRule},
			JUnitProperty{Name: "boundary", Value: c.Conventions.Boundary},
			JUnitProperty{Name: "correctness", Value: c.Conventions.Correctness},
			JUnitProperty{Name: "auc_ties", Value: c.Conventions.AUCTies},
		)
	case report.Regression != nil:
		r := report.Regression
		props = append(props,
			JUnitProperty{Name: "rows", Value: fmt.Sprint(r.Rows)},
			JUnitProperty{Name: "mape_denominator", Value: r.Conventions.MAPEDenominator},
		)
	}
	for _, m := range metricValues(report) {
		props = append(props, JUnitProperty{Name: m.name, Value: fmt.Sprintf("%.4f", m.value)})
	}
	return props
}

type metricValue struct {
	name  string
	value float64
}

// metricValues lists the headline metrics of a report, model A then model B.
func metricValues(report *models.Report) []metricValue {
	switch {
	case report.Classification != nil:
		m := report.Classification.Models
		return []metricValue{
			{"auc (model A)", float64(m.A.AUC)},
			{"auc (model B)", float64(m.B.AUC)},
			{"accuracy (model A)", m.A.Summary.Accuracy},
			{"accuracy (model B)", m.B.Summary.Accuracy},
		}
	case report.Regression != nil:
		m := report.Regression.Models
		return []metricValue{
			{"mae (model A)", float64(m.A.MAE)},
			{"mae (model B)", float64(m.B.MAE)},
			{"mape (model A)", float64(m.A.MAPE)},
			{"mape (model B)", float64(m.B.MAPE)},
			{"mse (model A)", float64(m.A.MSE)},
			{"mse (model B)", float64(m.B.MSE)},
		}
	}
	return nil
}
