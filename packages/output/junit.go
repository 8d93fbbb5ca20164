package output

import (
	"encoding/xml"
	"fmt"

	"github.com/stepline/stepline/packages/core/engine"
	"github.com/stepline/stepline/packages/results"
)

type junitFormatter struct {
	opts options
}

type junitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr"`
	TestCases []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr"`
}

func (f *junitFormatter) Format(doc *results.Document) error {
	suiteName := doc.Suite
	if suiteName == "" {
		suiteName = "stepline"
	}

	suite := junitTestSuite{
		Name:      suiteName,
		Tests:     doc.Summary.Total,
		Failures:  doc.Summary.Failed,
		Skipped:   doc.Summary.Skipped,
		Time:      doc.Duration / 1000,
		Timestamp: doc.Time,
	}

	for _, tr := range doc.Tests {
		tc := junitTestCase{
			Name:      tr.Name,
			Classname: suiteName + "." + tr.Priority,
			Time:      tr.Duration / 1000,
		}

		switch tr.Status {
		case string(engine.StatusFailed):
			tc.Failure = &junitFailure{
				Message: tr.Error,
				Content: tr.Error,
			}
		case string(engine.StatusSkipped):
			msg := tr.Reason
			if tr.FailedDependency != "" {
				msg = fmt.Sprintf("%s (root cause: %s)", tr.Reason, tr.FailedDependency)
			}
			tc.Skipped = &junitSkipped{Message: msg}
		}

		suite.TestCases = append(suite.TestCases, tc)
	}

	if _, err := fmt.Fprint(f.opts.writer, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(f.opts.writer)
	enc.Indent("", "  ")
	if err := enc.Encode(suite); err != nil {
		return err
	}
	_, err := fmt.Fprintln(f.opts.writer)
	return err
}
