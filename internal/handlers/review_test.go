package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func addReview(t *testing.T, env *testEnv, token string, productID uint, rating int, comment string) {
	t.Helper()

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews/add", map[string]any{
		"product_id": productID,
		"rating":     rating,
		"comment":    comment,
	}, token)
	require.NoError(t, env.Verifier.RequireLogin(env.Reviews.AddReview)(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAddReviewAndList(t *testing.T) {
	env := newTestEnv(t)
	aliceToken, _ := registerUser(t, env, "Alice", "alice@example.com")
	bobToken, _ := registerUser(t, env, "Bob", "bob@example.com")
	p := seedProduct(t, env, "Headphones", "59.99", 10)

	addReview(t, env, aliceToken, p.ID, 5, "Great sound")
	addReview(t, env, bobToken, p.ID, 3, "Decent")

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/reviews/"+fmt.Sprint(p.ID), nil, "")
	c.SetParamNames("productId")
	c.SetParamValues(fmt.Sprint(p.ID))
	require.NoError(t, env.Reviews.ListByProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var reviews []reviewView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 2)
	for _, r := range reviews {
		require.NotEmpty(t, r.UserName)
	}
}

func TestAddReviewRatingOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	token, _ := registerUser(t, env, "Alice", "alice@example.com")
	p := seedProduct(t, env, "Headphones", "59.99", 10)

	for _, rating := range []int{0, 6} {
		_, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews/add", map[string]any{
			"product_id": p.ID,
			"rating":     rating,
		}, token)
		err := env.Verifier.RequireLogin(env.Reviews.AddReview)(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		require.Equal(t, http.StatusBadRequest, he.Code)
		require.Equal(t, "Rating must be between 1 and 5", he.Message)
	}
}

func TestAddReviewTwice(t *testing.T) {
	env := newTestEnv(t)
	token, _ := registerUser(t, env, "Alice", "alice@example.com")
	p := seedProduct(t, env, "Headphones", "59.99", 10)
	addReview(t, env, token, p.ID, 4, "Good")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/reviews/add", map[string]any{
		"product_id": p.ID,
		"rating":     2,
	}, token)
	err := env.Verifier.RequireLogin(env.Reviews.AddReview)(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Equal(t, "You have already reviewed this product", he.Message)
}

func TestReviewSummary(t *testing.T) {
	env := newTestEnv(t)
	p := seedProduct(t, env, "Headphones", "59.99", 10)

	ratings := []int{5, 5, 4, 2}
	for i, rating := range ratings {
		token, _ := registerUser(t, env, fmt.Sprintf("User%d", i), fmt.Sprintf("user%d@example.com", i))
		addReview(t, env, token, p.ID, rating, "")
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/reviews/"+fmt.Sprint(p.ID)+"/summary", nil, "")
	c.SetParamNames("productId")
	c.SetParamValues(fmt.Sprint(p.ID))
	require.NoError(t, env.Reviews.Summary(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var s reviewSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	require.EqualValues(t, 4, s.TotalReviews)
	require.InDelta(t, 4.0, s.AverageRating, 0.001)
	require.EqualValues(t, 2, s.FiveStar)
	require.EqualValues(t, 1, s.FourStar)
	require.EqualValues(t, 0, s.ThreeStar)
	require.EqualValues(t, 1, s.TwoStar)
}

func TestReviewSummaryNoReviews(t *testing.T) {
	env := newTestEnv(t)
	p := seedProduct(t, env, "Headphones", "59.99", 10)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/reviews/"+fmt.Sprint(p.ID)+"/summary", nil, "")
	c.SetParamNames("productId")
	c.SetParamValues(fmt.Sprint(p.ID))
	require.NoError(t, env.Reviews.Summary(c))

	var s reviewSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	require.EqualValues(t, 0, s.TotalReviews)
	require.Zero(t, s.AverageRating)
}
