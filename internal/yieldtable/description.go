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

package yieldtable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hydrochar-lab/htc-model/pkg/core"
)

// Description is a parsed scenario description.
type Description struct {
	Label string
	Feed  string
	Temp  float64
	Time  float64
}

// Key returns the scenario key.
func (d Description) Key() core.Key {
	return core.Key{Name: d.Feed, Temp: d.Temp, Time: d.Time}
}

// String formats the description as "<label>, <feed>_<temp>C_<time>hr".
func (d Description) String() string {
	if d.Label == "" {
		return d.Key().String()
	}
	return d.Label + ", " + d.Key().String()
}

// ParseDescription parses "<label>, <feed>_<temp>C_<time>hr". The label part
// is optional. The feed may itself contain underscores, so the condition is
// read from the right.
func ParseDescription(description string) (Description, error) {
	var d Description
	scenario := strings.TrimSpace(description)
	if i := strings.LastIndex(scenario, ","); i >= 0 {
		d.Label = strings.TrimSpace(scenario[:i])
		scenario = strings.TrimSpace(scenario[i+1:])
	}

	timeSep := strings.LastIndex(scenario, "_")
	if timeSep <= 0 {
		return Description{}, invalidDescription(description)
	}
	tempSep := strings.LastIndex(scenario[:timeSep], "_")
	if tempSep <= 0 {
		return Description{}, invalidDescription(description)
	}

	temp, err := parseSuffixed(scenario[tempSep+1:timeSep], "C")
	if err != nil {
		return Description{}, invalidDescription(description)
	}
	time, err := parseSuffixed(scenario[timeSep+1:], "hr")
	if err != nil {
		return Description{}, invalidDescription(description)
	}

	d.Feed = scenario[:tempSep]
	d.Temp = temp
	d.Time = time
	return d, nil
}

func parseSuffixed(s, suffix string) (float64, error) {
	v, ok := strings.CutSuffix(s, suffix)
	if !ok || v == "" {
		return 0, fmt.Errorf("missing %q suffix", suffix)
	}
	return strconv.ParseFloat(v, 64)
}

func invalidDescription(description string) error {
	return fmt.Errorf("scenario description %q does not match \"<label>, <feed>_<temp>C_<time>hr\": %w",
		description, core.ErrInvalidParameter)
}
