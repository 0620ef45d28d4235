package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CaptureResult é o contrato que o Transfer Engine enxerga do gateway:
// status da captura e valor efetivamente capturado.
type CaptureResult struct {
	OrderID  string
	Status   string
	Amount   decimal.Decimal
	Currency string
}

// Completed informa se a captura foi finalizada pelo PayPal.
func (c CaptureResult) Completed() bool {
	return c.Status == "COMPLETED"
}

// PaymentGateway abstrai o adaptador de pagamento para o Transfer Engine.
type PaymentGateway interface {
	CaptureOrder(ctx context.Context, orderID string) (CaptureResult, error)
}

// PayPalService fala diretamente com a API REST do PayPal (sandbox ou live).
// Só deve ser usado do lado servidor: carrega o client secret.
type PayPalService struct {
	httpClient *http.Client
	apiBase    string
	clientID   string
	secret     string
	partnerID  string
	returnURL  string
	log        *logrus.Entry
}

// NewPayPalService cria o adaptador com as credenciais do ambiente.
func NewPayPalService(apiBase, clientID, secret, partnerID, returnURL string, log *logrus.Logger) *PayPalService {
	return &PayPalService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiBase:    strings.TrimRight(apiBase, "/"),
		clientID:   clientID,
		secret:     secret,
		partnerID:  partnerID,
		returnURL:  returnURL,
		log:        log.WithField("component", "paypal"),
	}
}

// getAccessToken obtém um token OAuth de client credentials.
func (s *PayPalService) getAccessToken(ctx context.Context) (string, error) {
	auth := base64.StdEncoding.EncodeToString([]byte(s.clientID + ":" + s.secret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.apiBase+"/v1/oauth2/token", strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("falha ao montar requisição de token: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha ao obter token PayPal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("PayPal respondeu %d ao pedido de token", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("falha ao decodificar token PayPal: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("PayPal não retornou access_token")
	}
	return body.AccessToken, nil
}

// CaptureOrder captura os fundos de uma ordem já autorizada pelo comprador.
// POST /v2/checkout/orders/{id}/capture
func (s *PayPalService) CaptureOrder(ctx context.Context, orderID string) (CaptureResult, error) {
	accessToken, err := s.getAccessToken(ctx)
	if err != nil {
		return CaptureResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v2/checkout/orders/%s/capture", s.apiBase, url.PathEscape(orderID)), nil)
	if err != nil {
		return CaptureResult{}, fmt.Errorf("falha ao montar requisição de captura: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return CaptureResult{}, fmt.Errorf("falha ao capturar ordem %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	var body struct {
		Status        string `json:"status"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					Amount struct {
						Value        string `json:"value"`
						CurrencyCode string `json:"currency_code"`
					} `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return CaptureResult{}, fmt.Errorf("falha ao decodificar resposta de captura: %w", err)
	}

	result := CaptureResult{OrderID: orderID, Status: body.Status}
	if len(body.PurchaseUnits) > 0 && len(body.PurchaseUnits[0].Payments.Captures) > 0 {
		amount := body.PurchaseUnits[0].Payments.Captures[0].Amount
		value, err := decimal.NewFromString(amount.Value)
		if err != nil {
			return CaptureResult{}, fmt.Errorf("valor capturado inválido %q: %w", amount.Value, err)
		}
		result.Amount = value
		result.Currency = amount.CurrencyCode
	}

	s.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   result.Status,
		"amount":   result.Amount.String(),
	}).Info("Captura PayPal processada.")
	return result, nil
}

// ConnectURL gera o link de onboarding de parceiro para o vendedor vincular
// sua conta de recebimento. O tracking_id é o id do usuário: é por ele que o
// retorno do PayPal é associado à conta certa.
func (s *PayPalService) ConnectURL(userID string) string {
	u, _ := url.Parse("https://www.sandbox.paypal.com/bizsignup/partner/entry")
	q := u.Query()
	q.Set("partnerId", s.partnerID)
	q.Set("partnerClientId", s.clientID)
	q.Set("returnToPartnerUrl", s.returnURL)
	q.Set("integrationType", "FO")
	q.Set("features", "PAYMENT,REFUND")
	q.Set("partnerMemo", "Connect your account to receive payouts from ColorVerse.")
	q.Set("displayMode", "minibrowser")
	q.Set("tracking_id", userID)
	u.RawQuery = q.Encode()
	return u.String()
}

// GetMerchantID consulta a integração de um vendedor a partir do tracking id.
func (s *PayPalService) GetMerchantID(ctx context.Context, trackingID string) (string, error) {
	accessToken, err := s.getAccessToken(ctx)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1/customer/partners/%s/merchant-integrations?tracking_id=%s",
		s.apiBase, url.PathEscape(s.partnerID), url.QueryEscape(trackingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("falha ao montar consulta de integração: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("falha ao consultar integração do vendedor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("PayPal respondeu %d à consulta de integração", resp.StatusCode)
	}

	var body struct {
		MerchantID string `json:"merchant_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("falha ao decodificar integração do vendedor: %w", err)
	}
	return body.MerchantID, nil
}
