package source

import (
	"io"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/network"
)

// Workbook layout.
const (
	colParents = 0 // A
	colID      = 1 // B
	colName    = 3 // D
	colIP      = 4 // E
	colVLAN    = 5 // F
	colNote    = 6 // G

	// EndMarker in the ID column stops reading.
	EndMarker = "ここまで"

	debugRows = 10
)

// DefaultSheets are tried in order when no sheet is requested.
var DefaultSheets = []string{"構成図作成", "構成"}

// Header keywords. A row whose ID cell contains one of idHeaderWords, or
// whose parents cell contains one of parentHeaderWords, is a header.
var (
	idHeaderWords     = []string{"ID", "id", "機器", "名", "アドレス", "VLAN", "備考", "接続"}
	parentHeaderWords = []string{"接続", "ID"}
)

// XLSX reads network workbooks.
type XLSX struct{}

func (XLSX) Name() string { return "xlsx" }

func (XLSX) Supports(filename string) bool { return hasExt(filename, ".xlsx", ".xlsm") }

// Read loads the selected sheet of the workbook in r.
//
// Rows before the first header or data row are skipped. Reading stops at
// the first blank ID once data has started, or at the [EndMarker] row.
// SourceOrder is the 1-based sheet row number.
func (XLSX) Read(r io.Reader, opts Options) (*network.Set, error) {
	logger := opts.logger()

	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer wb.Close()

	sheet, err := selectSheet(wb.GetSheetList(), opts)
	if err != nil {
		return nil, err
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}
	logger.Info("reading sheet", "sheet", sheet, "rows", len(rows))

	set := network.NewSet()
	started := false
	for i, row := range rows {
		rowNum := i + 1
		id := cell(row, colID)
		if rowNum <= debugRows {
			logger.Debug("row", "row", rowNum, "id", id, "name", cell(row, colName))
		}

		if id == "" {
			if started {
				logger.Debug("end of data", "row", rowNum)
				break
			}
			continue
		}
		if id == EndMarker {
			logger.Debug("end marker", "row", rowNum)
			break
		}

		parents := cell(row, colParents)
		started = true
		if isHeaderRow(id, parents) {
			logger.Debug("skipping header", "row", rowNum)
			continue
		}

		if set.Has(id) {
			return nil, errs.New(errs.ErrCodeDuplicateID, "row %d: duplicate ID %q", rowNum, id)
		}
		name := cell(row, colName)
		if name == "" {
			name = id
		}
		err := set.Add(network.Node{
			ID:          id,
			Name:        name,
			IP:          cell(row, colIP),
			VLAN:        parseVLAN(cell(row, colVLAN)),
			Note:        cell(row, colNote),
			Parents:     splitParents(parents, ","),
			SourceOrder: rowNum,
		})
		if err != nil {
			return nil, located(err, "row %d", rowNum)
		}
	}
	return finish(set, opts)
}

// SheetNames lists the sheets of the workbook in r.
func SheetNames(r io.Reader) ([]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer wb.Close()
	return wb.GetSheetList(), nil
}

func selectSheet(sheets []string, opts Options) (string, error) {
	logger := opts.logger()
	if len(sheets) == 0 {
		return "", errs.New(errs.ErrCodeSheetNotFound, "workbook has no sheets")
	}
	if opts.Sheet != "" {
		if slices.Contains(sheets, opts.Sheet) {
			return opts.Sheet, nil
		}
		return "", errs.New(errs.ErrCodeSheetNotFound,
			"sheet %q not found (available: %s)", opts.Sheet, strings.Join(sheets, ", "))
	}
	for _, name := range DefaultSheets {
		if slices.Contains(sheets, name) {
			return name, nil
		}
	}
	if len(sheets) > 1 && opts.PickSheet != nil {
		name, err := opts.PickSheet(sheets)
		if err != nil {
			return "", err
		}
		if !slices.Contains(sheets, name) {
			return "", errs.New(errs.ErrCodeSheetNotFound, "sheet %q not found", name)
		}
		return name, nil
	}
	logger.Warn("no default sheet found, using first sheet", "sheet", sheets[0])
	return sheets[0], nil
}

func isHeaderRow(id, parents string) bool {
	for _, w := range idHeaderWords {
		if strings.Contains(id, w) {
			return true
		}
	}
	for _, w := range parentHeaderWords {
		if strings.Contains(parents, w) {
			return true
		}
	}
	return false
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
