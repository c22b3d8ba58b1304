package push

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the out-of-band push gateway. Delivery is fire-and-forget:
// callers log failures and move on.
type Client struct {
	BaseURL    string
	Username   string
	Password   string
	HTTPClient *http.Client
}

type SendPushRequest struct {
	PhoneNumber string `json:"phone_number"`
	Title       string `json:"title"`
	Message     string `json:"message"`
}

type SendPushResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		DeliveryID string `json:"delivery_id"`
		Status     string `json:"status"`
	} `json:"data"`
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		BaseURL:  baseURL,
		Username: username,
		Password: password,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send delivers one push message to a device by phone number.
func (c *Client) Send(phoneNumber, title, message string) (*SendPushResponse, error) {
	requestData := SendPushRequest{
		PhoneNumber: phoneNumber,
		Title:       title,
		Message:     message,
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := fmt.Sprintf("%s/send/push", c.BaseURL)

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	auth := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var response SendPushResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &response, nil
}

// SendPush sends a push and discards the gateway response.
func (c *Client) SendPush(phoneNumber, title, message string) error {
	_, err := c.Send(phoneNumber, title, message)
	return err
}
