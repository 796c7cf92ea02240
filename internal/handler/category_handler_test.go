package handler

import (
	"net/http"
	"testing"
)

func TestListCategoriesIncludesDefaults(t *testing.T) {
	api := setupTestAPI(t)

	w := performRequest(t, api.ListCategories, http.MethodGet, "/api/categories", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := len(decodeBody(t, w)["categories"].([]any)); got != 5 {
		t.Fatalf("expected 5 default categories, got %d", got)
	}
}

func TestCreateAndUpdateCategory(t *testing.T) {
	api := setupTestAPI(t)

	w := performRequest(t, api.CreateCategory, http.MethodPost, "/api/categories", map[string]any{"name": "Reading", "color": "#abcdef"}, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeBody(t, w)["category"].(map[string]any)
	if created["color"] != "#ABCDEF" {
		t.Fatalf("expected normalized colour, got %v", created["color"])
	}

	id := created["id"].(string)
	w = performRequest(t, api.UpdateCategory, http.MethodPut, "/api/categories/"+id, map[string]any{"name": "Books"}, idParam(id))
	updated := decodeBody(t, w)["category"].(map[string]any)
	if updated["name"] != "Books" || updated["color"] != "#3B82F6" {
		t.Fatalf("unexpected update: %v", updated)
	}
}

func TestCategoryErrors(t *testing.T) {
	api := setupTestAPI(t)

	w := performRequest(t, api.CreateCategory, http.MethodPost, "/api/categories", map[string]any{"name": "Bad", "color": "blue"}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid colour, got %d", w.Code)
	}

	w = performRequest(t, api.UpdateCategory, http.MethodPut, "/api/categories/none", map[string]any{"name": "x"}, idParam("none"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on update, got %d", w.Code)
	}

	w = performRequest(t, api.DeleteCategory, http.MethodDelete, "/api/categories/none", nil, idParam("none"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on delete, got %d", w.Code)
	}
}
