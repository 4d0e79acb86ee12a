package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/casaverde/comanda/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetParser reads a daily menu configuration spreadsheet. The sheet is a
// sequence of sections: a header row with the section name in column A
// ("base_price", "proteins", or a component name), followed by option rows
// with id in column B, name in column C and, for proteins, price in column
// D. The base_price header carries its value in column B.
type SheetParser struct {
	service *sheets.Service
}

type Config struct {
	CredentialsJSON []byte
}

func New(cfg Config) (*SheetParser, error) {
	ctx := context.Background()

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(cfg.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetParser{
		service: service,
	}, nil
}

const (
	sectionBasePrice = "base_price"
	sectionProteins  = "proteins"
)

func (p *SheetParser) ParseDailyMenu(ctx context.Context, spreadsheetID, menuDate string) (*domain.DailyMenuConfig, error) {
	readRange := "A:D"
	resp, err := p.service.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("no data found in spreadsheet")
	}

	config := &domain.DailyMenuConfig{
		MenuDate: menuDate,
	}

	var currentSection string
	options := make(map[string][]domain.ComponentOption)

	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}

		first := cellString(row, 0)
		if first != "" {
			// section header
			currentSection = strings.ToLower(first)

			if currentSection == sectionBasePrice {
				if price, err := cellFloat(row, 1); err == nil {
					config.BasePrice = price
				}
				currentSection = ""
			}
			continue
		}

		if currentSection == "" {
			continue
		}

		id := cellString(row, 1)
		name := cellString(row, 2)
		if id == "" || name == "" {
			continue
		}

		if currentSection == sectionProteins {
			protein := domain.ProteinOption{
				ID:        id,
				Name:      name,
				Available: true,
			}
			if price, err := cellFloat(row, 3); err == nil {
				protein.Price = price
			}
			config.Proteins = append(config.Proteins, protein)
			continue
		}

		options[currentSection] = append(options[currentSection], domain.ComponentOption{
			ID:   id,
			Name: name,
		})
	}

	for section, opts := range options {
		config.SetOptions(section, opts)
	}

	if config.BasePrice == 0 && len(config.Proteins) == 0 {
		return nil, fmt.Errorf("spreadsheet has no base price and no proteins")
	}

	return config, nil
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[idx]))
}

func cellFloat(row []interface{}, idx int) (float64, error) {
	raw := cellString(row, idx)
	if raw == "" {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseFloat(raw, 64)
}
