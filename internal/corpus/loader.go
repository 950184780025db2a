package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/domain"
	"github.com/Mckzne/Motor-Monitoring-and-Fault-Classification-using-ML/internal/ports"
)

// ErrEmptyCorpus is returned when no reference dataset could be loaded. The
// owning process must treat this as fatal before starting the generator.
var ErrEmptyCorpus = errors.New("corpus: no reference datasets loaded")

// DefaultFiles lists the labeled fault datasets. The training file
// dataset.csv is deliberately absent.
var DefaultFiles = []string{
	"NORMAL_OP.csv",
	"HB1_OVER_TEMP.csv",
	"HB2_HIGH_SIDE_SC.csv",
	"HB2_HIGH_SIDE_OC.csv",
	"HB3_OVER_TEMP.csv",
	"HB1_LOW_SIDE_SC.csv",
	"HB3_LOW_SIDE_OC.csv",
	"HB12_OVER_TEMP.csv",
	"HB3_HIGH_SIDE_SC.csv",
}

// Table holds one fault condition's reference rows in memory. Each row is
// aligned to domain.SensorChannels; the fault-indicator column is dropped
// at load time. Immutable after Load.
type Table struct {
	Name  string
	Label string
	Rows  [][]float64
}

// Row returns the features of row i keyed by channel name.
func (t *Table) Row(i int) map[string]float64 {
	features := make(map[string]float64, len(domain.SensorChannels))
	for j, ch := range domain.SensorChannels {
		features[ch] = t.Rows[i][j]
	}
	return features
}

// Corpus maps dataset names to their in-memory tables.
type Corpus struct {
	tables map[string]*Table
	names  []string
}

// New builds a corpus from already-constructed tables (tests, examples).
func New(tables ...*Table) *Corpus {
	c := &Corpus{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		if t == nil || len(t.Rows) == 0 {
			continue
		}
		if t.Label == "" {
			t.Label = domain.LabelForFile(t.Name)
		}
		c.tables[t.Name] = t
	}
	c.names = sortedNames(c.tables)
	return c
}

// Load reads each named CSV from dir. A file that is missing or corrupt is
// logged and skipped; only a fully empty result is an error.
func Load(dir string, files []string, obs ports.Observability) (*Corpus, error) {
	if len(files) == 0 {
		files = DefaultFiles
	}

	tables := make(map[string]*Table, len(files))
	for _, name := range files {
		t, err := loadTable(filepath.Join(dir, name))
		if err != nil {
			obs.LogError("corpus_load_failed", err, ports.Field{Key: "file", Value: name})
			continue
		}
		t.Name = name
		t.Label = domain.LabelForFile(name)
		tables[name] = t
		obs.LogInfo("corpus_loaded", ports.Field{Key: "file", Value: name}, ports.Field{Key: "rows", Value: len(t.Rows)})
	}

	if len(tables) == 0 {
		return nil, ErrEmptyCorpus
	}
	return &Corpus{tables: tables, names: sortedNames(tables)}, nil
}

// Tables exposes the name -> table mapping. Callers must not mutate it.
func (c *Corpus) Tables() map[string]*Table { return c.tables }

// Names returns dataset names in a stable order.
func (c *Corpus) Names() []string { return c.names }

func (c *Corpus) Table(name string) *Table { return c.tables[name] }

func (c *Corpus) Len() int { return len(c.tables) }

func loadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	// Column index per sensor channel; extra columns (FDD included) are
	// ignored, missing channels fail the whole file.
	index := make([]int, len(domain.SensorChannels))
	for i, ch := range domain.SensorChannels {
		index[i] = -1
		for j, col := range header {
			if col == ch {
				index[i] = j
				break
			}
		}
		if index[i] == -1 {
			return nil, fmt.Errorf("%s: missing sensor column %q", path, ch)
		}
	}

	var rows [][]float64
	for line := 2; ; line++ {
		record, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		row := make([]float64, len(index))
		for i, j := range index {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: column %s: %w", path, line, domain.SensorChannels[i], err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}
	return &Table{Rows: rows}, nil
}

func sortedNames(tables map[string]*Table) []string {
	names := make([]string, 0, len(tables))
	for n := range tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
