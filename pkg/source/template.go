package source

import (
	"io"

	"github.com/xuri/excelize/v2"

	errs "github.com/matzehuels/netdraw/pkg/errors"
)

// Template sheet names.
const (
	TemplateSheet = "構成"
	IDListSheet   = "IDリスト"
)

// TemplateHeaders are the column titles of the input sheet, A through J.
var TemplateHeaders = []string{
	"接続元ID(自動: カンマ区切り)",
	"ID（自動）",
	"ID（選択）",
	"機器名",
	"IPアドレス",
	"VLANID(数字のみ:例 1,10)複数非対応",
	"備考",
	"接続元1(選択)",
	"接続元2(選択)",
	"接続元3(選択)",
}

var idListHeaders = []string{"ID", "機器名"}

// WriteTemplate writes an empty input workbook to w.
func WriteTemplate(w io.Writer) error {
	wb := excelize.NewFile()
	defer wb.Close()

	if err := wb.SetSheetName("Sheet1", TemplateSheet); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "rename sheet")
	}
	if _, err := wb.NewSheet(IDListSheet); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "add sheet %q", IDListSheet)
	}

	header, err := wb.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "create header style")
	}

	if err := writeHeader(wb, TemplateSheet, TemplateHeaders, header, 22); err != nil {
		return err
	}
	if err := writeHeader(wb, IDListSheet, idListHeaders, header, 18); err != nil {
		return err
	}
	if err := wb.SetPanes(TemplateSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "freeze header row")
	}
	wb.SetActiveSheet(0)

	if err := wb.Write(w); err != nil {
		return errs.Wrap(errs.ErrCodeSerializationIO, err, "write template")
	}
	return nil
}

func writeHeader(wb *excelize.File, sheet string, titles []string, style int, width float64) error {
	for i, title := range titles {
		ref, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "cell reference")
		}
		if err := wb.SetCellValue(sheet, ref, title); err != nil {
			return errs.Wrap(errs.ErrCodeInternal, err, "set %s!%s", sheet, ref)
		}
	}
	last, _ := excelize.ColumnNumberToName(len(titles))
	if err := wb.SetColWidth(sheet, "A", last, width); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "set column width")
	}
	if err := wb.SetCellStyle(sheet, "A1", last+"1", style); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "style header")
	}
	return nil
}
