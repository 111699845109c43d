// Package plot renders a pkg/store scalar log as CSV or a LaTeX table,
// the two export formats a paper or a quick spreadsheet import needs.
// It reaches no further than encoding/csv and text/template: there is
// no charting or rendering library anywhere in the example pack, so
// this package stays plain stdlib by necessity rather than by default.
package plot

import (
	"encoding/csv"
	"io"
	"strconv"
	"text/template"

	"github.com/ranjanr/roach/pkg/store"
)

// WriteCSV writes points as a two-column "step,value" CSV to w.
func WriteCSV(w io.Writer, points []store.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "value"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{strconv.Itoa(p.Step), strconv.FormatFloat(p.Value, 'g', -1, 64)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const latexTemplate = `\begin{tabular}{rr}
\hline
step & value \\
\hline
{{- range . }}
{{ .Step }} & {{ printf "%.6g" .Value }} \\
{{- end }}
\hline
\end{tabular}
`

var latexTpl = template.Must(template.New("latex").Parse(latexTemplate))

// WriteLaTeX renders points as a simple tabular environment to w.
func WriteLaTeX(w io.Writer, points []store.Point) error {
	return latexTpl.Execute(w, points)
}
