// Package csvy writes the CSVY sample log format: a YAML front matter
// block between "---" lines, followed by a CSV header row and CSV sample
// records.
package csvy

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ColumnHint describes a variable-width column for the PerfTable section —
// e.g. cpu.usage.percpu, whose field width depends on the host's CPU count.
type ColumnHint struct {
	Type  string `yaml:"Type"`
	Count int    `yaml:"Count,omitempty"`
}

// SystemInfo is the host snapshot embedded in every CSVY header's System
// section.
type SystemInfo struct {
	OSType       string `yaml:"OSType"`
	OSRelease    string `yaml:"OSRelease"`
	Distribution string `yaml:"Distribution,omitempty"`
	MemoryBytes  uint64 `yaml:"MemoryBytes"`
	SwapBytes    uint64 `yaml:"SwapBytes"`
	Hostname     string `yaml:"Hostname"`
	CPUCount     int    `yaml:"CPUCount"`
	CPUOnline    int    `yaml:"CPUOnline"`
	CPUMHz       float64 `yaml:"CPUMHz,omitempty"`
}

// Header is the YAML front matter written once, at collector creation,
// before any sample record.
type Header struct {
	Version       string                `yaml:"Version"`
	Provider      string                `yaml:"Provider"`
	Metadata      map[string]any        `yaml:"Metadata"`
	PerfTable     map[string]ColumnHint `yaml:"PerfTable,omitempty"`
	System        SystemInfo            `yaml:"System"`
	Cgroup        string                `yaml:"Cgroup"`
	CgroupDriver  string                `yaml:"CgroupDriver"`
	PolledAt      int64                 `yaml:"PolledAt"`
	InitializedAt int64                 `yaml:"InitializedAt"`
}

// Marshal renders h as a complete "---\n<yaml>---\n" front matter block.
func (h Header) Marshal() ([]byte, error) {
	body, err := yaml.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("csvy: marshal header: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(body)
	buf.WriteString("---\n")
	return buf.Bytes(), nil
}
