package table

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"repairs/internal/model"
)

func products() []model.Product {
	return []model.Product{
		{ID: "p1", Title: "Brake pads", SKU: "BP-1", Category: "brakes", UnitPrice: decimal.NewFromInt(900), Quantity: 4},
		{ID: "p2", Title: "Oil filter", SKU: "OF-2", Category: "engine", UnitPrice: decimal.NewFromInt(350), Quantity: 40},
		{ID: "p3", Title: "Brake fluid", SKU: "BF-3", Category: "brakes", UnitPrice: decimal.NewFromInt(1200), Quantity: 12},
		{ID: "p4", Title: "Spark plug", SKU: "SP-4", Category: "engine", UnitPrice: decimal.NewFromInt(80), Quantity: 100},
	}
}

func ids(ps []model.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestParseQuery(t *testing.T) {
	q := ParseQuery(url.Values{
		"q":         {"  brake "},
		"sort":      {"unitPrice"},
		"order":     {"DESC"},
		"page":      {"2"},
		"page_size": {"500"},
	})
	assert.Equal(t, Query{Search: "brake", Sort: "unitPrice", Desc: true, Page: 2, PageSize: MaxPageSize}, q)

	q = ParseQuery(url.Values{"page": {"-1"}, "page_size": {"abc"}})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.False(t, q.Desc)
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	page, err := Apply(products(), Query{Search: "BRAKE"})
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p3"}, ids(page.Items))
	assert.Equal(t, 2, page.Total)
}

func TestApply_SortNumericAndText(t *testing.T) {
	page, err := Apply(products(), Query{Sort: "unitPrice"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p2", "p1", "p3"}, ids(page.Items))

	page, err = Apply(products(), Query{Sort: "title", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p2", "p1", "p3"}, ids(page.Items))
}

func TestApply_Paginates(t *testing.T) {
	rows := products()
	page, err := Apply(rows, Query{Sort: "quantity", Page: 2, PageSize: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"p4"}, ids(page.Items))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.Pages)

	beyond, err := Apply(rows, Query{Page: 9, PageSize: 3})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)

	// input order untouched
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, ids(rows))
}

func TestApply_HugePageIsEmptyNotPanic(t *testing.T) {
	q := ParseQuery(url.Values{"page": {"9223372036854775807"}, "page_size": {"2"}})
	require.Equal(t, 9223372036854775807, q.Page)

	var page Page[model.Product]
	require.NotPanics(t, func() {
		var err error
		page, err = Apply(products(), q)
		require.NoError(t, err)
	})
	assert.Empty(t, page.Items)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 3, page.Page)
}

func TestApply_Empty(t *testing.T) {
	page, err := Apply([]model.Product(nil), Query{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.Pages)
	assert.Equal(t, DefaultPageSize, page.PageSize)
}

func TestFlatten(t *testing.T) {
	f, err := Flatten(model.Job{ID: "j1", Title: "Fix roof", Client: model.RefTo[model.Client]("c1"), Contractors: []model.Ref[model.Contractor]{
		model.RefTo[model.Contractor]("k1"), model.RefTo[model.Contractor]("k2"),
	}})
	require.NoError(t, err)

	assert.Equal(t, "j1", f["id"])
	assert.Equal(t, "c1", f["client"])
	assert.Equal(t, "k1, k2", f["contractors"])

	f, err = Flatten(model.Job{ID: "j2", Client: model.Ref[model.Client]{ID: "c2", Value: &model.Client{ID: "c2", Name: "Amina"}}})
	require.NoError(t, err)
	assert.Equal(t, "Amina", f["client"])

	_, err = Flatten([]int{1})
	assert.Error(t, err)
}

func TestExportXLSX(t *testing.T) {
	data, err := ExportXLSX(products()[:2], "Products", []string{"id", "title", "unitPrice"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "title", "unitPrice"},
		{"p1", "Brake pads", "900"},
		{"p2", "Oil filter", "350"},
	}, rows)
	assert.Equal(t, []string{"Products"}, f.GetSheetList())
}

func TestColumns_IDFirst(t *testing.T) {
	cols := Columns([]map[string]string{{"title": "a", "id": "1"}, {"sku": "x"}})
	assert.Equal(t, []string{"id", "sku", "title"}, cols)
}
