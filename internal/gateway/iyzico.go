package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	initializePath = "/payment/iyzipos/checkoutform/initialize/auth/ecom"
	retrievePath   = "/payment/iyzipos/checkoutform/auth/ecom/detail"

	statusSuccess = "success"
)

// ErrNotConfigured means gateway credentials are missing. The whole
// checkout feature is unavailable until they are set.
var ErrNotConfigured = errors.New("payment gateway is not configured")

// Error is a provider-reported business failure: the gateway answered,
// but declined or failed the operation. Distinct from transport errors.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error: %s", e.Message)
}

// Buyer identifies the paying customer on the gateway side
type Buyer struct {
	ID      string
	Name    string
	Surname string
	Email   string
	Phone   string
	IP      string
}

// BasketItem is one priced line in the checkout basket
type BasketItem struct {
	ID       string
	Name     string
	Category string
	Price    float64
}

// CheckoutRequest builds one hosted checkout form session
type CheckoutRequest struct {
	ConversationID string
	Price          float64
	PaidPrice      float64
	Currency       string
	BasketID       string
	CallbackURL    string
	Buyer          Buyer
	BasketItems    []BasketItem
}

// CheckoutSession is the gateway-side record of one payment attempt
type CheckoutSession struct {
	Token           string
	PaymentPageURL  string
	TokenExpireTime int64
}

// SessionResult is the outcome of one payment attempt as reported by the
// gateway. Status/PaymentStatus are returned verbatim so the verification
// layer stays the single authority on what counts as success.
type SessionResult struct {
	Status         string
	PaymentStatus  string
	PaymentID      string
	Price          float64
	PaidPrice      float64
	Currency       string
	Installment    int
	BasketID       string
	ConversationID string
	ErrorCode      string
	ErrorMessage   string
}

// Client talks to the iyzico checkout form API
type Client struct {
	config     utils.IyzicoConfig
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(config utils.IyzicoConfig, log *zap.Logger) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log.With(zap.String("component", "iyzico")),
	}
}

// Configured reports whether credentials are present
func (c *Client) Configured() bool {
	return c.config.APIKey != "" && c.config.SecretKey != ""
}

// ==================== WIRE TYPES ====================

type initializeRequest struct {
	Locale         string            `json:"locale"`
	ConversationID string            `json:"conversationId"`
	Price          string            `json:"price"`
	PaidPrice      string            `json:"paidPrice"`
	Currency       string            `json:"currency"`
	BasketID       string            `json:"basketId"`
	PaymentGroup   string            `json:"paymentGroup"`
	CallbackURL    string            `json:"callbackUrl"`
	Buyer          wireBuyer         `json:"buyer"`
	ShippingAddr   wireAddress       `json:"shippingAddress"`
	BillingAddr    wireAddress       `json:"billingAddress"`
	BasketItems    []wireBasketItem  `json:"basketItems"`
}

type wireBuyer struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Surname             string `json:"surname"`
	GsmNumber           string `json:"gsmNumber"`
	Email               string `json:"email"`
	IdentityNumber      string `json:"identityNumber"`
	RegistrationAddress string `json:"registrationAddress"`
	IP                  string `json:"ip"`
	City                string `json:"city"`
	Country             string `json:"country"`
}

type wireAddress struct {
	ContactName string `json:"contactName"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Address     string `json:"address"`
}

type wireBasketItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category1 string `json:"category1"`
	ItemType  string `json:"itemType"`
	Price     string `json:"price"`
}

type initializeResponse struct {
	Status          string `json:"status"`
	ConversationID  string `json:"conversationId"`
	Token           string `json:"token"`
	PaymentPageURL  string `json:"paymentPageUrl"`
	TokenExpireTime int64  `json:"tokenExpireTime"`
	ErrorCode       string `json:"errorCode"`
	ErrorMessage    string `json:"errorMessage"`
}

type retrieveRequest struct {
	Locale         string `json:"locale"`
	ConversationID string `json:"conversationId,omitempty"`
	Token          string `json:"token"`
}

type retrieveResponse struct {
	Status         string      `json:"status"`
	PaymentStatus  string      `json:"paymentStatus"`
	PaymentID      json.Number `json:"paymentId"`
	Price          json.Number `json:"price"`
	PaidPrice      json.Number `json:"paidPrice"`
	Currency       string      `json:"currency"`
	Installment    int         `json:"installment"`
	BasketID       string      `json:"basketId"`
	ConversationID string      `json:"conversationId"`
	ErrorCode      string      `json:"errorCode"`
	ErrorMessage   string      `json:"errorMessage"`
}

// ==================== OPERATIONS ====================

// CreateSession initializes a hosted checkout form session. Not idempotent:
// callers must not retry blindly, a retry opens a second session.
func (c *Client) CreateSession(ctx context.Context, req *CheckoutRequest) (*CheckoutSession, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	items := make([]wireBasketItem, len(req.BasketItems))
	for i, item := range req.BasketItems {
		items[i] = wireBasketItem{
			ID:        item.ID,
			Name:      item.Name,
			Category1: item.Category,
			ItemType:  "VIRTUAL",
			Price:     utils.FormatPrice(item.Price),
		}
	}

	// The studio is a service business: the gateway still requires identity
	// and address blocks, filled with the studio contact as the original
	// integration does.
	addr := wireAddress{
		ContactName: req.Buyer.Name + " " + req.Buyer.Surname,
		City:        "Istanbul",
		Country:     "Turkey",
		Address:     "Studio",
	}

	wireReq := initializeRequest{
		Locale:         "tr",
		ConversationID: req.ConversationID,
		Price:          utils.FormatPrice(req.Price),
		PaidPrice:      utils.FormatPrice(req.PaidPrice),
		Currency:       req.Currency,
		BasketID:       req.BasketID,
		PaymentGroup:   "PRODUCT",
		CallbackURL:    req.CallbackURL,
		Buyer: wireBuyer{
			ID:                  req.Buyer.ID,
			Name:                req.Buyer.Name,
			Surname:             req.Buyer.Surname,
			GsmNumber:           req.Buyer.Phone,
			Email:               req.Buyer.Email,
			IdentityNumber:      "11111111111",
			RegistrationAddress: addr.Address,
			IP:                  req.Buyer.IP,
			City:                addr.City,
			Country:             addr.Country,
		},
		ShippingAddr: addr,
		BillingAddr:  addr,
		BasketItems:  items,
	}

	var wireResp initializeResponse
	if err := c.post(ctx, initializePath, wireReq, &wireResp); err != nil {
		return nil, err
	}

	if wireResp.Status != statusSuccess {
		c.log.Warn("Checkout session rejected by gateway",
			zap.String("conversation_id", req.ConversationID),
			zap.String("error_code", wireResp.ErrorCode),
			zap.String("error_message", wireResp.ErrorMessage),
		)
		return nil, &Error{Code: wireResp.ErrorCode, Message: wireResp.ErrorMessage}
	}

	c.log.Info("Checkout session created",
		zap.String("conversation_id", req.ConversationID),
		zap.String("token", wireResp.Token),
	)

	return &CheckoutSession{
		Token:           wireResp.Token,
		PaymentPageURL:  wireResp.PaymentPageURL,
		TokenExpireTime: wireResp.TokenExpireTime,
	}, nil
}

// RetrieveSession fetches the result of a payment attempt. Idempotent read,
// safe to retry. Provider-side failures come back inside the result, not as
// an error: interpreting them is the verification layer's job.
func (c *Client) RetrieveSession(ctx context.Context, token, conversationID string) (*SessionResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	wireReq := retrieveRequest{
		Locale:         "tr",
		ConversationID: conversationID,
		Token:          token,
	}

	var wireResp retrieveResponse
	if err := c.post(ctx, retrievePath, wireReq, &wireResp); err != nil {
		return nil, err
	}

	return &SessionResult{
		Status:         wireResp.Status,
		PaymentStatus:  wireResp.PaymentStatus,
		PaymentID:      wireResp.PaymentID.String(),
		Price:          parsePrice(wireResp.Price),
		PaidPrice:      parsePrice(wireResp.PaidPrice),
		Currency:       wireResp.Currency,
		Installment:    wireResp.Installment,
		BasketID:       wireResp.BasketID,
		ConversationID: wireResp.ConversationID,
		ErrorCode:      wireResp.ErrorCode,
		ErrorMessage:   wireResp.ErrorMessage,
	}, nil
}

// ==================== TRANSPORT ====================

func (c *Client) post(ctx context.Context, path string, reqBody, respBody any) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal gateway request: %w", err)
	}

	url := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("create gateway request: %w", err)
	}

	randomKey := strconv.FormatInt(time.Now().UnixNano(), 10)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authorization(randomKey, path, jsonData))
	req.Header.Set("x-iyzi-rnd", randomKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(respBody); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}

	return nil
}

// authorization builds the IYZWS2 HMAC-SHA256 header
func (c *Client) authorization(randomKey, path string, body []byte) string {
	payload := randomKey + path + string(body)

	mac := hmac.New(sha256.New, []byte(c.config.SecretKey))
	mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))

	authString := fmt.Sprintf("apiKey:%s&randomKey:%s&signature:%s",
		c.config.APIKey, randomKey, signature)

	return "IYZWS2 " + base64.StdEncoding.EncodeToString([]byte(authString))
}

func parsePrice(n json.Number) float64 {
	v, err := n.Float64()
	if err != nil {
		return 0
	}
	return v
}
