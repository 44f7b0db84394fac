package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	poundsPerKilogram = 2.2046226218
	inchesPerMetre    = 39.3700787
)

// ReadWeightHeight reads a CSV file with a header row containing Height
// (inches) and Weight (pounds) columns. Heights are converted to metres and
// weights to kilograms; every other column is ignored. Items are labeled by
// their 1-based data row number.
func ReadWeightHeight(r io.Reader) (*Dataset[[]float32], error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read csv header: %w", err)
	}
	heightCol, weightCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.Trim(name, `" `)) {
		case "height":
			heightCol = i
		case "weight":
			weightCol = i
		}
	}
	if heightCol < 0 || weightCol < 0 {
		return nil, fmt.Errorf("dataset: csv header %v must contain Height and Weight", header)
	}

	ds := &Dataset[[]float32]{Name: string(FormatWeightHeight)}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: failed to read csv row %d: %w", row, err)
		}
		height, err := strconv.ParseFloat(strings.TrimSpace(record[heightCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: invalid height in row %d: %w", row, err)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(record[weightCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: invalid weight in row %d: %w", row, err)
		}
		ds.Append(strconv.Itoa(row), []float32{
			float32(height / inchesPerMetre),
			float32(weight / poundsPerKilogram),
		})
	}
	return ds, nil
}
