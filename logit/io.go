package logit

import (
	"encoding/csv"
	"io"
	"strconv"

	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/quantal/logitrace"
)

// WriteCorrespondence writes a traced branch as gzip-compressed,
// tab-separated rows, one row per accepted profile with the flattened action probabilities in
// traversal order. Rows may have different widths when the support shrank
// along the branch.
func WriteCorrespondence(w io.Writer, branch []*logitrace.BehaviorProfile) error {
	zw := gzip.NewWriter(w)
	cw := csv.NewWriter(zw)
	cw.Comma = '\t'

	record := make([]string, 0, 16)
	for _, p := range branch {
		record = record[:0]
		for i := 0; i < p.Len(); i++ {
			record = append(record, strconv.FormatFloat(p.At(i), 'g', 17, 64))
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, "writing profile row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "flushing rows")
	}
	return errors.Wrap(zw.Close(), "closing gzip stream")
}

// ReadCorrespondence reads back the rows written by WriteCorrespondence.
func ReadCorrespondence(r io.Reader) ([][]float64, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening gzip stream")
	}
	defer zr.Close()

	cr := csv.NewReader(zr)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1

	var rows [][]float64
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading profile row")
		}

		row := make([]float64, len(record))
		for i, field := range record {
			if row[i], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, errors.Wrapf(err, "parsing field %d", i)
			}
		}
		rows = append(rows, row)
	}
}
