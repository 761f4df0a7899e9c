package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExcelStore implements RowStore over a local .xlsx workbook. It is the
// standalone-mode backend used when no hosted spreadsheet is configured.
// A single mutex serializes workbook access; excelize files are not safe
// for concurrent mutation.
type ExcelStore struct {
	mu     sync.Mutex
	f      *excelize.File
	path   string
	sheet  string
	logger *zap.Logger
}

// NewExcelStore opens the workbook at path, creating it with the given
// header row when it does not exist yet.
func NewExcelStore(path, sheet string, header []string, logger *zap.Logger) (*ExcelStore, error) {
	var f *excelize.File
	if _, err := os.Stat(path); err == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
		}
	} else {
		f = excelize.NewFile()
		index, err := f.NewSheet(sheet)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		f.DeleteSheet("Sheet1")
		f.SetActiveSheet(index)
		for col, name := range header {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
			}
		}
		if err := f.SaveAs(path); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to save new workbook %s: %w", path, err)
		}
		logger.Info("Created quote workbook", zap.String("path", path), zap.String("sheet", sheet))
	}

	return &ExcelStore{f: f, path: path, sheet: sheet, logger: logger}, nil
}

var _ RowStore = (*ExcelStore)(nil)

func (s *ExcelStore) GetRows(ctx context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook rows: %w", err)
	}
	return rows, nil
}

func (s *ExcelStore) GetRow(ctx context.Context, rowIndex int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook rows: %w", err)
	}
	if rowIndex < 1 || rowIndex > len(rows) {
		return nil, nil
	}
	return rows[rowIndex-1], nil
}

func (s *ExcelStore) InsertRowAtTop(ctx context.Context, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.f.InsertRows(s.sheet, 2, 1); err != nil {
		return fmt.Errorf("failed to insert workbook row: %w", err)
	}
	if err := s.writeRow(2, values); err != nil {
		return err
	}
	return s.save()
}

func (s *ExcelStore) UpdateRow(ctx context.Context, rowIndex int, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeRow(rowIndex, values); err != nil {
		return err
	}
	return s.save()
}

// Close releases the underlying workbook handle.
func (s *ExcelStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}

func (s *ExcelStore) writeRow(rowIndex int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowIndex)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := s.f.SetCellValue(s.sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func (s *ExcelStore) save() error {
	if err := s.f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}
	return nil
}
