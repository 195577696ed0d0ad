// Package dataset reads and writes the gym record files a directory holds.
//
// Each collection lives in its own file named after it (members.json,
// classes.yaml, ...). JSON and YAML are both accepted; when both exist for
// a collection, JSON wins. Missing collections load as empty.
package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

// ErrNoData is returned by Load when the directory holds no collection file.
var ErrNoData = errors.New("no data files found")

// Collection file base names.
const (
	Members    = "members"
	Classes    = "classes"
	Guests     = "guests"
	Trainers   = "trainers"
	Expenses   = "expenses"
	Categories = "categories"
	Budgets    = "budgets"
)

// CollectionNames returns the collection base names in load order.
func CollectionNames() []string {
	return []string{Members, Classes, Guests, Trainers, Expenses, Categories, Budgets}
}

// Format is a data file encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates s as a file format. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown data format %q (want json or yaml)", s)
	}
}

var extensions = []string{".json", ".yaml", ".yml"}

// Dataset is one consistent snapshot of every collection.
type Dataset struct {
	Members    []model.Member          `json:"members"`
	Classes    []model.GymClass        `json:"classes"`
	Guests     []model.Guest           `json:"guests"`
	Trainers   []model.Trainer         `json:"trainers"`
	Expenses   []model.Expense         `json:"expenses"`
	Categories []model.ExpenseCategory `json:"categories"`
	Budgets    []model.ExpenseBudget   `json:"budgets"`

	// Sources maps each loaded collection to the file it came from.
	Sources map[string]string `json:"-"`
}

// collection binds a file base name to the slice it decodes into.
type collection struct {
	name string
	dst  any
}

func (d *Dataset) collections() []collection {
	return []collection{
		{Members, &d.Members},
		{Classes, &d.Classes},
		{Guests, &d.Guests},
		{Trainers, &d.Trainers},
		{Expenses, &d.Expenses},
		{Categories, &d.Categories},
		{Budgets, &d.Budgets},
	}
}

// Load reads every collection file in dir concurrently. It returns
// ErrNoData if none exist, and the first read or decode error otherwise.
func Load(ctx context.Context, dir string) (*Dataset, error) {
	ds := &Dataset{}
	cols := ds.collections()
	sources := make([]string, len(cols))

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range cols {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := readCollection(dir, c.name, c.dst)
			if err != nil {
				return fmt.Errorf("loading %s: %w", c.name, err)
			}
			sources[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds.Sources = make(map[string]string)
	for i, c := range cols {
		if sources[i] != "" {
			ds.Sources[c.name] = sources[i]
		}
	}
	if len(ds.Sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoData, dir)
	}
	return ds, nil
}

// readCollection decodes the first existing file for name into dst and
// returns its path, or "" if no file exists.
func readCollection(dir, name string, dst any) (string, error) {
	for _, ext := range extensions {
		path := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", err
		}
		if err := decode(data, formatOf(ext), dst); err != nil {
			return "", fmt.Errorf("parsing %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

func formatOf(ext string) Format {
	if ext == ".json" {
		return JSON
	}
	return YAML
}

func decode(data []byte, f Format, dst any) error {
	if f == JSON {
		return json.Unmarshal(data, dst)
	}
	return yaml.Unmarshal(data, dst)
}

// Write saves every non-empty collection of ds into dir using format f,
// creating dir if needed. It returns the written paths.
func Write(dir string, ds *Dataset, f Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	var paths []string
	for _, c := range ds.collections() {
		data, err := encode(c.dst, f)
		if err != nil {
			return paths, fmt.Errorf("encoding %s: %w", c.name, err)
		}
		if data == nil {
			continue
		}
		path := filepath.Join(dir, c.name+"."+string(f))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func encode(src any, f Format) ([]byte, error) {
	if isEmpty(src) {
		return nil, nil
	}
	if f == JSON {
		data, err := json.MarshalIndent(src, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return yaml.Marshal(src)
}

func isEmpty(src any) bool {
	switch v := src.(type) {
	case *[]model.Member:
		return len(*v) == 0
	case *[]model.GymClass:
		return len(*v) == 0
	case *[]model.Guest:
		return len(*v) == 0
	case *[]model.Trainer:
		return len(*v) == 0
	case *[]model.Expense:
		return len(*v) == 0
	case *[]model.ExpenseCategory:
		return len(*v) == 0
	case *[]model.ExpenseBudget:
		return len(*v) == 0
	}
	return false
}
