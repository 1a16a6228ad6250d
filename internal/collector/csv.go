/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hydrochar-lab/htc-model/internal/logging"
	"github.com/hydrochar-lab/htc-model/pkg/core"
)

var propertyColumns = []string{"feed", "hhv", "hhv_std", "moisture", "moisture_std", "density"}

// CSVPropertySource reads feed properties from a CSV file with the header
// Feed,HHV,HHV_std,moisture,moisture_std,density (any order, any case).
type CSVPropertySource struct {
	path string
}

// NewCSVPropertySource creates a source over the file at path.
func NewCSVPropertySource(path string) *CSVPropertySource {
	return &CSVPropertySource{path: path}
}

// Name implements PropertySource.
func (s *CSVPropertySource) Name() string { return string(SourceCSV) }

// Properties implements PropertySource.
func (s *CSVPropertySource) Properties(ctx context.Context) ([]PropertyRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open properties: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadProperties(ctx, f)
}

// ReadProperties parses a properties table.
func ReadProperties(ctx context.Context, r io.Reader) ([]PropertyRow, error) {
	logger := logging.FromContext(ctx)

	records, header, err := readTable(r)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(header, propertyColumns)
	if err != nil {
		return nil, err
	}

	rows := make([]PropertyRow, 0, len(records))
	for line, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		values := make(map[string]float64, len(propertyColumns)-1)
		for _, col := range propertyColumns[1:] {
			v, err := parseFloat(rec[idx[col]])
			if err != nil {
				return nil, fmt.Errorf("properties line %d, column %s: %w", line+2, col, err)
			}
			values[col] = v
		}
		row := PropertyRow{
			Feed: strings.TrimSpace(rec[idx["feed"]]),
			Properties: core.Properties{
				HHV:         values["hhv"],
				HHVStd:      values["hhv_std"],
				Moisture:    values["moisture"],
				MoistureStd: values["moisture_std"],
				Density:     values["density"],
			},
		}
		if err := row.Validate(); err != nil {
			return nil, fmt.Errorf("properties line %d: %w", line+2, err)
		}
		rows = append(rows, row)
	}

	logger.V(logging.DEBUG).Info("Read feed properties", "rows", len(rows))
	return rows, nil
}

// CSVYieldSource reads yields from a wide CSV file with the header
// feed,time,parameter followed by one column per reaction temperature in °C.
// Empty cells are missing values.
type CSVYieldSource struct {
	path string
}

// NewCSVYieldSource creates a source over the file at path.
func NewCSVYieldSource(path string) *CSVYieldSource {
	return &CSVYieldSource{path: path}
}

// Name implements YieldSource.
func (s *CSVYieldSource) Name() string { return string(SourceCSV) }

// Yields implements YieldSource.
func (s *CSVYieldSource) Yields(ctx context.Context) ([]YieldRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open yields: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadYields(ctx, f)
}

// ReadYields parses a wide yields table.
func ReadYields(ctx context.Context, r io.Reader) ([]YieldRow, error) {
	logger := logging.FromContext(ctx)

	records, header, err := readTable(r)
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(header, []string{"feed", "time", "parameter"})
	if err != nil {
		return nil, err
	}

	tempCols := make(map[int]float64)
	for i, name := range header {
		switch name {
		case "feed", "time", "parameter":
			continue
		}
		temp, err := strconv.ParseFloat(strings.TrimSuffix(name, "c"), 64)
		if err != nil {
			return nil, fmt.Errorf("yields column %q is not a temperature: %w", name, core.ErrInvalidParameter)
		}
		tempCols[i] = temp
	}
	if len(tempCols) == 0 {
		return nil, fmt.Errorf("yields table has no temperature columns: %w", core.ErrInvalidParameter)
	}

	rows := make([]YieldRow, 0, len(records))
	for line, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		param, err := ParseYieldParameter(strings.TrimSpace(rec[idx["parameter"]]))
		if err != nil {
			return nil, fmt.Errorf("yields line %d: %w", line+2, err)
		}
		residence, err := parseFloat(rec[idx["time"]])
		if err != nil {
			return nil, fmt.Errorf("yields line %d, column time: %w", line+2, err)
		}
		row := YieldRow{
			Feed:      strings.TrimSpace(rec[idx["feed"]]),
			Time:      residence,
			Parameter: param,
			Values:    make(map[float64]float64, len(tempCols)),
		}
		for col, temp := range tempCols {
			cell := strings.TrimSpace(rec[col])
			if cell == "" {
				continue
			}
			v, err := parseFloat(cell)
			if err != nil {
				return nil, fmt.Errorf("yields line %d, column %s: %w", line+2, header[col], err)
			}
			row.Values[temp] = v
		}
		rows = append(rows, row)
	}

	logger.V(logging.DEBUG).Info("Read yields", "rows", len(rows), "temperatures", len(tempCols))
	return rows, nil
}

// readTable returns the data records and the lower-cased header.
func readTable(r io.Reader) ([][]string, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("empty table: %w", core.ErrInvalidParameter)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read records: %w", err)
	}
	return records, header, nil
}

func columnIndex(header, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", col, core.ErrInvalidParameter)
		}
	}
	return idx, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, core.ErrInvalidParameter)
	}
	return v, nil
}
