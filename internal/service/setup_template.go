package service

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/bagdasarian/staff-portal/internal/csvstore"
	"github.com/bagdasarian/staff-portal/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	TableObjectives = "objectives"
	TableKRAs       = "kras"
	TableKPIs       = "kpis"
)

//go:embed templates/setup.yaml
var defaultSetupTemplate []byte

type TableTemplate struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

// SetupTemplate набор таблиц юнита и их колонок.
type SetupTemplate struct {
	Tables []TableTemplate `yaml:"tables"`
}

// LoadSetupTemplate читает шаблон из файла; пустой путь означает встроенный шаблон.
func LoadSetupTemplate(path string) (*SetupTemplate, error) {
	if path == "" {
		return ParseSetupTemplate(defaultSetupTemplate)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read setup template: %w", err)
	}
	return ParseSetupTemplate(data)
}

func ParseSetupTemplate(data []byte) (*SetupTemplate, error) {
	var tpl SetupTemplate
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("parse setup template: %w", err)
	}

	seen := make(map[string]bool, len(tpl.Tables))
	for _, t := range tpl.Tables {
		if !validTableName(t.Name) {
			return nil, fmt.Errorf("setup template: invalid table name %q", t.Name)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("setup template: duplicate table %q", t.Name)
		}
		if len(t.Columns) == 0 {
			return nil, fmt.Errorf("setup template: table %q has no columns", t.Name)
		}
		seen[t.Name] = true
	}
	for _, required := range []string{TableObjectives, TableKRAs, TableKPIs} {
		if !seen[required] {
			return nil, fmt.Errorf("setup template: table %q is required", required)
		}
	}
	return &tpl, nil
}

// Build раскладывает вложенные цели по плоским таблицам шаблона.
func (t *SetupTemplate) Build(objectives []domain.Objective) []*csvstore.Table {
	records := map[string][]map[string]string{}
	for _, o := range objectives {
		records[TableObjectives] = append(records[TableObjectives], map[string]string{
			"id": o.ID, "title": o.Title,
		})
		for _, kra := range o.KRAs {
			records[TableKRAs] = append(records[TableKRAs], map[string]string{
				"id": kra.ID, "objective_id": o.ID, "title": kra.Title,
			})
			for _, kpi := range kra.KPIs {
				records[TableKPIs] = append(records[TableKPIs], map[string]string{
					"id": kpi.ID, "kra_id": kra.ID, "title": kpi.Title, "target": kpi.Target, "unit": kpi.Unit,
				})
			}
		}
	}

	tables := make([]*csvstore.Table, 0, len(t.Tables))
	for _, tt := range t.Tables {
		table := &csvstore.Table{Name: tt.Name, Header: append([]string{}, tt.Columns...), Rows: [][]string{}}
		for _, rec := range records[tt.Name] {
			row := make([]string, len(tt.Columns))
			for i, col := range tt.Columns {
				row[i] = rec[col]
			}
			table.Rows = append(table.Rows, row)
		}
		tables = append(tables, table)
	}
	return tables
}

// objectivesFromTables собирает вложенную структуру обратно из трех таблиц.
func objectivesFromTables(objectives, kras, kpis *csvstore.Table) []domain.Objective {
	out := make([]domain.Objective, 0)
	if objectives == nil {
		return out
	}

	kpisByKRA := map[string][]domain.KPI{}
	if kpis != nil {
		for _, r := range kpis.Records() {
			kpisByKRA[r["kra_id"]] = append(kpisByKRA[r["kra_id"]], domain.KPI{
				ID: r["id"], Title: r["title"], Target: r["target"], Unit: r["unit"],
			})
		}
	}

	krasByObjective := map[string][]domain.KRA{}
	if kras != nil {
		for _, r := range kras.Records() {
			krasByObjective[r["objective_id"]] = append(krasByObjective[r["objective_id"]], domain.KRA{
				ID: r["id"], Title: r["title"], KPIs: nonNil(kpisByKRA[r["id"]]),
			})
		}
	}

	for _, r := range objectives.Records() {
		out = append(out, domain.Objective{
			ID: r["id"], Title: r["title"], KRAs: nonNil(krasByObjective[r["id"]]),
		})
	}
	return out
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}

func validTableName(name string) bool {
	if name == "" || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
