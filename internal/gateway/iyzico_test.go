package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studio-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(baseURL string) *Client {
	return NewClient(utils.IyzicoConfig{
		APIKey:    "test-api-key",
		SecretKey: "test-secret",
		BaseURL:   baseURL,
	}, zap.NewNop())
}

func checkoutRequest() *CheckoutRequest {
	return &CheckoutRequest{
		ConversationID: "conv-1",
		Price:          1750,
		PaidPrice:      1750,
		Currency:       "TRY",
		BasketID:       "conv-1",
		CallbackURL:    "https://studio.example.com/checkout/callback",
		Buyer: Buyer{
			ID:      "conv-1",
			Name:    "Ayse",
			Surname: "Yilmaz",
			Email:   "ayse@example.com",
			Phone:   "05321234567",
			IP:      "10.0.0.1",
		},
		BasketItems: []BasketItem{
			{ID: "pkg-1", Name: "Portre Paketi", Category: "Package", Price: 1500},
			{ID: "add-1", Name: "Ekstra baski", Category: "AddOn", Price: 250},
		},
	}
}

func TestCreateSession_Success(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"status":          "success",
			"token":           "tok-abc",
			"paymentPageUrl":  "https://sandbox-cpp.example.com/?token=tok-abc",
			"tokenExpireTime": 1800000,
		})
	}))
	defer server.Close()

	session, err := testClient(server.URL).CreateSession(context.Background(), checkoutRequest())

	require.NoError(t, err)
	assert.Equal(t, "tok-abc", session.Token)
	assert.Equal(t, "https://sandbox-cpp.example.com/?token=tok-abc", session.PaymentPageURL)

	assert.Equal(t, "/payment/iyzipos/checkoutform/initialize/auth/ecom", gotPath)
	assert.True(t, strings.HasPrefix(gotAuth, "IYZWS2 "))

	// prices go over the wire as strings, basket must keep every line
	assert.Equal(t, "1750.00", gotBody["paidPrice"])
	items := gotBody["basketItems"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "1500.00", items[0].(map[string]any)["price"])
}

func TestCreateSession_BusinessFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":       "failure",
			"errorCode":    "1001",
			"errorMessage": "api bilgileri bulunamadi",
		})
	}))
	defer server.Close()

	_, err := testClient(server.URL).CreateSession(context.Background(), checkoutRequest())

	require.Error(t, err)
	var gwErr *Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, "1001", gwErr.Code)
}

func TestCreateSession_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := testClient(server.URL).CreateSession(context.Background(), checkoutRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway request failed")
	var gwErr *Error
	assert.False(t, errors.As(err, &gwErr), "transport failure must not look like a business failure")
}

func TestCreateSession_NotConfigured(t *testing.T) {
	client := NewClient(utils.IyzicoConfig{}, zap.NewNop())

	_, err := client.CreateSession(context.Background(), checkoutRequest())

	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRetrieveSession_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/iyzipos/checkoutform/auth/ecom/detail", r.URL.Path)
		// the provider returns numbers for prices and payment id
		w.Write([]byte(`{
			"status": "success",
			"paymentStatus": "SUCCESS",
			"paymentId": 120394857,
			"price": 1750.0,
			"paidPrice": 1750.0,
			"currency": "TRY",
			"installment": 1,
			"basketId": "conv-1",
			"conversationId": "conv-1"
		}`))
	}))
	defer server.Close()

	result, err := testClient(server.URL).RetrieveSession(context.Background(), "tok-abc", "conv-1")

	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "SUCCESS", result.PaymentStatus)
	assert.Equal(t, "120394857", result.PaymentID)
	assert.Equal(t, 1750.0, result.PaidPrice)
	assert.Equal(t, 1, result.Installment)
}

func TestRetrieveSession_FailureComesBackInsideResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "failure",
			"paymentStatus": "FAILURE",
			"errorCode": "10051",
			"errorMessage": "Kart limiti yetersiz"
		}`))
	}))
	defer server.Close()

	result, err := testClient(server.URL).RetrieveSession(context.Background(), "tok-abc", "")

	require.NoError(t, err, "a declined payment is a result, not an error")
	assert.Equal(t, "failure", result.Status)
	assert.Equal(t, "10051", result.ErrorCode)
}
