package main

import (
	"context"

	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/cms"
	"github.com/Lozano-Guerrero/Pagina-web-Granados-del-Mediterr-neo/internal/prices"
)

// PriceGridView is the three classification cards.
type PriceGridView struct {
	Lang       string
	Heading    cms.Heading
	Cards      []prices.Card
	Disclaimer string
}

// PricesView is the investment overview page.
type PricesView struct {
	Lang      string
	Stages    []cms.Stage
	Financing cms.Financing
	Grid      PriceGridView
	Map       MapView
}

// buildPriceGrid never fails: without a price list every card reads "Consultar".
func buildPriceGrid(ctx context.Context, lang string) PriceGridView {
	table, _ := priceClient.Get(ctx)
	return PriceGridView{
		Lang:       lang,
		Heading:    site.PriceGrid,
		Cards:      prices.Cards(table),
		Disclaimer: site.Disclaimer,
	}
}
