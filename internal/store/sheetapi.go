package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// valuesResponse is the values-range payload of the spreadsheet API.
type valuesResponse struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

type valuesUpdate struct {
	Values [][]string `json:"values"`
}

type dimensionRange struct {
	SheetID    int    `json:"sheetId"`
	Dimension  string `json:"dimension"`
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
}

type insertDimension struct {
	Range             dimensionRange `json:"range"`
	InheritFromBefore bool           `json:"inheritFromBefore"`
}

type batchUpdateRequest struct {
	Requests []map[string]insertDimension `json:"requests"`
}

// SheetClient implements RowStore against the hosted spreadsheet API.
type SheetClient struct {
	httpClient    *resty.Client
	spreadsheetID string
	sheetName     string
	columns       int
	logger        *zap.Logger
}

// NewSheetClient builds the spreadsheet API client. columns fixes the width
// of the sheet range read and written (the row schema length).
func NewSheetClient(baseURL, apiKey, spreadsheetID, sheetName string, columns int, logger *zap.Logger) *SheetClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &SheetClient{
		httpClient:    client,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		columns:       columns,
		logger:        logger,
	}
}

var _ RowStore = (*SheetClient)(nil)

func (c *SheetClient) GetRows(ctx context.Context) ([][]string, error) {
	readRange := fmt.Sprintf("%s!A:%s", c.sheetName, columnName(c.columns))

	var response valuesResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&response).
		Get(fmt.Sprintf("/v4/spreadsheets/%s/values/%s", c.spreadsheetID, readRange))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet range %s: %w", readRange, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sheet API read returned %d: %s", resp.StatusCode(), resp.String())
	}
	return response.Values, nil
}

func (c *SheetClient) GetRow(ctx context.Context, rowIndex int) ([]string, error) {
	readRange := fmt.Sprintf("%s!A%d:%s%d", c.sheetName, rowIndex, columnName(c.columns), rowIndex)

	var response valuesResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&response).
		Get(fmt.Sprintf("/v4/spreadsheets/%s/values/%s", c.spreadsheetID, readRange))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet range %s: %w", readRange, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("sheet API read returned %d: %s", resp.StatusCode(), resp.String())
	}
	if len(response.Values) == 0 {
		return nil, nil
	}
	return response.Values[0], nil
}

func (c *SheetClient) InsertRowAtTop(ctx context.Context, values []string) error {
	// shift data rows down by one, then fill the freed row 2
	body := batchUpdateRequest{
		Requests: []map[string]insertDimension{{
			"insertDimension": {
				Range: dimensionRange{Dimension: "ROWS", StartIndex: 1, EndIndex: 2},
			},
		}},
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		Post(fmt.Sprintf("/v4/spreadsheets/%s:batchUpdate", c.spreadsheetID))
	if err != nil {
		return fmt.Errorf("failed to insert sheet row: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sheet API insert returned %d: %s", resp.StatusCode(), resp.String())
	}

	if err := c.UpdateRow(ctx, 2, values); err != nil {
		return err
	}

	c.logger.Info("Inserted sheet row at top",
		zap.String("spreadsheet_id", c.spreadsheetID),
		zap.String("sheet", c.sheetName),
	)
	return nil
}

func (c *SheetClient) UpdateRow(ctx context.Context, rowIndex int, values []string) error {
	writeRange := fmt.Sprintf("%s!A%d:%s%d", c.sheetName, rowIndex, columnName(c.columns), rowIndex)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("valueInputOption", "RAW").
		SetBody(valuesUpdate{Values: [][]string{values}}).
		Put(fmt.Sprintf("/v4/spreadsheets/%s/values/%s", c.spreadsheetID, writeRange))
	if err != nil {
		return fmt.Errorf("failed to update sheet range %s: %w", writeRange, err)
	}
	if resp.IsError() {
		return fmt.Errorf("sheet API update returned %d: %s", resp.StatusCode(), resp.String())
	}

	c.logger.Debug("Updated sheet row",
		zap.String("range", writeRange),
	)
	return nil
}

// columnName converts a 1-based column number to its A1-notation letters.
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
