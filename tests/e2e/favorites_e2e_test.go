//go:build e2e
// +build e2e

package e2e

import (
	"net/http"
	"testing"
)

// TestAccountLifecycle walks the whole surface in one browser-like session:
// signup, conflicting signup, failed and successful login, favorites
// mutation, and the post-logout lockout.
func TestAccountLifecycle(t *testing.T) {
	username := uniqueUsername("flow")
	email := uniqueEmail("flow")
	password := "pikachu123"

	signup := NewTestClient(t)
	resp := signup.SignUp(username, email, password)
	assertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = NewTestClient(t).SignUp(username, uniqueEmail("flow2"), "x")
	assertStatus(t, resp, http.StatusConflict)
	resp.Body.Close()

	client := NewTestClient(t)
	resp = client.Login(username, "wrong-password")
	assertStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	resp = client.Login(username, password)
	assertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = client.AddFavorite("bulbasaur")
	assertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = client.ListFavorites()
	assertStatus(t, resp, http.StatusOK)
	items := decodeBody[[]string](t, resp)
	if len(items) != 1 || items[0] != "bulbasaur" {
		t.Fatalf("expected [bulbasaur], got %v", items)
	}

	resp = client.Logout()
	assertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = client.ListFavorites()
	assertStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()
}

func TestFavorites_Add(t *testing.T) {
	t.Run("add is idempotent", func(t *testing.T) {
		client := NewTestClient(t)
		resp := client.SignUp(uniqueUsername("fav"), uniqueEmail("fav"), "password123")
		assertStatus(t, resp, http.StatusCreated)
		resp.Body.Close()

		for i := 0; i < 3; i++ {
			resp = client.AddFavorite("pikachu")
			assertStatus(t, resp, http.StatusOK)
			resp.Body.Close()
		}

		resp = client.ListFavorites()
		assertStatus(t, resp, http.StatusOK)
		items := decodeBody[[]string](t, resp)
		if len(items) != 1 || items[0] != "pikachu" {
			t.Errorf("expected [pikachu], got %v", items)
		}
	})

	t.Run("empty item is rejected", func(t *testing.T) {
		client := NewTestClient(t)
		resp := client.SignUp(uniqueUsername("favempty"), uniqueEmail("favempty"), "password123")
		assertStatus(t, resp, http.StatusCreated)
		resp.Body.Close()

		resp = client.AddFavorite("")
		assertStatus(t, resp, http.StatusBadRequest)
		resp.Body.Close()
	})
}

func TestFavorites_Remove(t *testing.T) {
	t.Run("remove then list excludes the item", func(t *testing.T) {
		client := NewTestClient(t)
		resp := client.SignUp(uniqueUsername("rm"), uniqueEmail("rm"), "password123")
		assertStatus(t, resp, http.StatusCreated)
		resp.Body.Close()

		for _, item := range []string{"bulbasaur", "charmander"} {
			resp = client.AddFavorite(item)
			assertStatus(t, resp, http.StatusOK)
			resp.Body.Close()
		}

		resp = client.RemoveFavorite("bulbasaur")
		assertStatus(t, resp, http.StatusOK)
		resp.Body.Close()

		resp = client.ListFavorites()
		assertStatus(t, resp, http.StatusOK)
		items := decodeBody[[]string](t, resp)
		if len(items) != 1 || items[0] != "charmander" {
			t.Errorf("expected [charmander], got %v", items)
		}
	})

	t.Run("removing an absent item succeeds", func(t *testing.T) {
		client := NewTestClient(t)
		resp := client.SignUp(uniqueUsername("rmabsent"), uniqueEmail("rmabsent"), "password123")
		assertStatus(t, resp, http.StatusCreated)
		resp.Body.Close()

		resp = client.RemoveFavorite("mewtwo")
		assertStatus(t, resp, http.StatusOK)
		resp.Body.Close()
	})
}

func TestFavorites_EmptyList(t *testing.T) {
	client := NewTestClient(t)
	resp := client.SignUp(uniqueUsername("empty"), uniqueEmail("empty"), "password123")
	assertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = client.ListFavorites()
	assertStatus(t, resp, http.StatusOK)
	items := decodeBody[[]string](t, resp)
	if items == nil {
		t.Fatal("expected an empty array, got null")
	}
	if len(items) != 0 {
		t.Errorf("expected no favorites, got %v", items)
	}
}

func TestFavorites_IsolatedPerUser(t *testing.T) {
	first := NewTestClient(t)
	resp := first.SignUp(uniqueUsername("iso1"), uniqueEmail("iso1"), "password123")
	assertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	second := NewTestClient(t)
	resp = second.SignUp(uniqueUsername("iso2"), uniqueEmail("iso2"), "password123")
	assertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = first.AddFavorite("snorlax")
	assertStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = second.ListFavorites()
	assertStatus(t, resp, http.StatusOK)
	items := decodeBody[[]string](t, resp)
	if len(items) != 0 {
		t.Errorf("expected second user's set to be empty, got %v", items)
	}
}
