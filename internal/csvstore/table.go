package csvstore

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const fileExt = ".csv"

// Table именованная CSV-таблица: заголовок и строки.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// FileName имя blob-файла таблицы в папке.
func FileName(name string) string {
	return name + fileExt
}

// TableName обратное к FileName; ok=false, если файл не CSV.
func TableName(fileName string) (string, bool) {
	if !strings.HasSuffix(strings.ToLower(fileName), fileExt) {
		return "", false
	}
	return fileName[:len(fileName)-len(fileExt)], true
}

// Column индекс колонки по имени или -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Records строки таблицы в виде словарей по заголовку.
func (t *Table) Records() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(map[string]string, len(t.Header))
		for i, h := range t.Header {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

func Encode(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(t.Header) > 0 {
		if err := w.Write(t.Header); err != nil {
			return nil, err
		}
	}
	for i, row := range t.Rows {
		if len(t.Header) > 0 && len(row) != len(t.Header) {
			return nil, fmt.Errorf("csvstore: table %s row %d has %d fields, header has %d", t.Name, i, len(row), len(t.Header))
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode разбирает CSV; первая запись считается заголовком. Короткие строки
// дополняются пустыми ячейками, лишние ячейки отбрасываются.
func Decode(name string, data []byte) (*Table, error) {
	t := &Table{Name: name, Header: []string{}, Rows: [][]string{}}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csvstore: decode %s: %w", name, err)
	}
	t.Header = header

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvstore: decode %s: %w", name, err)
		}
		t.Rows = append(t.Rows, fit(rec, len(header)))
	}
	return t, nil
}

func fit(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

// Reconcile объединяет таблицы: заголовок existing, затем новые колонки
// incoming в порядке появления. Строки обеих таблиц переносятся по именам
// колонок, строки incoming добавляются в конец.
func Reconcile(existing, incoming *Table) *Table {
	if existing == nil {
		existing = &Table{Name: incoming.Name}
	}

	header := append([]string{}, existing.Header...)
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[h] = true
	}
	for _, h := range incoming.Header {
		if !seen[h] {
			seen[h] = true
			header = append(header, h)
		}
	}

	out := &Table{Name: existing.Name, Header: header, Rows: make([][]string, 0, len(existing.Rows)+len(incoming.Rows))}
	if out.Name == "" {
		out.Name = incoming.Name
	}
	out.Rows = append(out.Rows, remap(existing, header)...)
	out.Rows = append(out.Rows, remap(incoming, header)...)
	return out
}

func remap(t *Table, header []string) [][]string {
	idx := make([]int, len(header))
	for i, h := range header {
		idx[i] = t.Column(h)
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out := make([]string, len(header))
		for i, src := range idx {
			if src >= 0 && src < len(row) {
				out[i] = row[src]
			}
		}
		rows = append(rows, out)
	}
	return rows
}
