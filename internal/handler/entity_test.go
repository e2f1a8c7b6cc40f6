package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"repairs/internal/apierror"
	"repairs/internal/dto"
	"repairs/internal/gateway"
	"repairs/internal/model"
	"repairs/internal/resource"
	"repairs/internal/table"
)

const clientsJSON = `[
	{"id":"c1","name":"Jane","email":"jane@x.com","phoneNumber":"+254700000000","location":"Nairobi","added_by":"u1"},
	{"id":"c2","name":"Otieno","email":"o@x.com","phoneNumber":"+254711111111","location":"Kisumu","added_by":"u1"},
	{"id":"c3","name":"Amina","email":"amina@x.com","phoneNumber":"+254722222222","location":"Nairobi","added_by":"u1"}
]`

func clientsConsole(f *fixture) *gin.Engine {
	r := gin.New()
	NewEntityHandler[model.Client, dto.ClientRequest, dto.ClientRequest](f.set.Clients, f.store, "clients").
		Register(r.Group("/clients"))
	return r
}

func serveClients(t *testing.T) func(api *gin.Engine) {
	return func(api *gin.Engine) {
		api.GET("/clients", func(c *gin.Context) {
			bearer(t, c)
			c.Data(http.StatusOK, "application/json", []byte(clientsJSON))
		})
		api.GET("/clients/:id", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Client not found"})
		})
		api.POST("/clients", func(c *gin.Context) {
			bearer(t, c)
			var body map[string]interface{}
			assert.NoError(t, c.ShouldBindJSON(&body))
			body["id"] = "c9"
			c.JSON(http.StatusCreated, body)
		})
		api.DELETE("/clients/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
		})
	}
}

func TestEntity_ListFiltersSortsAndPages(t *testing.T) {
	f := newFixture(t, serveClients(t))
	f.signIn(t)

	w := perform(clientsConsole(f), http.MethodGet, "/clients?q=nairobi&sort=name&page_size=1", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	page := decode[table.Page[model.Client]](t, w)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Amina", page.Items[0].Name)
}

func TestEntity_ExportWritesWorkbook(t *testing.T) {
	f := newFixture(t, serveClients(t))
	f.signIn(t)

	w := perform(clientsConsole(f), http.MethodGet, "/clients/export.xlsx?sort=name&order=desc", "")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "clients.xlsx")

	book, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("clients")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "c2", rows[1][0], "Otieno sorts first descending")
}

func TestEntity_CreateValidatesBeforeCalling(t *testing.T) {
	f := newFixture(t, serveClients(t))
	f.signIn(t)
	console := clientsConsole(f)

	w := perform(console, http.MethodPost, "/clients", `{"name":"J","email":"jane@x.com"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	fields := decode[apierror.ValidationError](t, w).Fields
	assert.Equal(t, "min", fields["name"])
	assert.Equal(t, "required", fields["phoneNumber"])
	assert.Equal(t, "required", fields["location"])
	assert.Zero(t, f.hits.Load())

	w = perform(console, http.MethodPost, "/clients", `{"name":"Wanjiru","email":"w@x.com","phoneNumber":"+254733333333","location":"Nakuru"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[model.Client](t, w)
	assert.Equal(t, "c9", created.ID)
	assert.Equal(t, "Nakuru", created.Location)
}

func TestEntity_ServerFailureIsBadGateway(t *testing.T) {
	f := newFixture(t, serveClients(t))
	f.signIn(t)

	w := perform(clientsConsole(f), http.MethodGet, "/clients/c404", "")

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Client not found", decode[apierror.APIError](t, w).Message)
}

func TestEntity_DeletePassesResponseThrough(t *testing.T) {
	f := newFixture(t, serveClients(t))
	f.signIn(t)

	w := perform(clientsConsole(f), http.MethodDelete, "/clients/c1", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Client deleted"}`, w.Body.String())
}

func TestEntity_UnreachableAPI(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	set := resource.NewSet(gateway.New(gateway.Config{BaseURL: srv.URL}))
	f := newFixture(t, func(api *gin.Engine) {})
	f.signIn(t)

	r := gin.New()
	NewEntityHandler[model.Client, dto.ClientRequest, dto.ClientRequest](set.Clients, f.store, "clients").
		Register(r.Group("/clients"))
	w := perform(r, http.MethodGet, "/clients", "")

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Network error: unable to reach the server", decode[apierror.APIError](t, w).Message)
}
