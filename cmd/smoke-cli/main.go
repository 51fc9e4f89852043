package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type scenario struct {
	Name        string
	Description string
}

type model struct {
	scenarios   []scenario
	selectedScn int
	status      string
	detail      string
	busy        bool
}

func initialModel() model {
	return model{
		scenarios: []scenario{
			{"payment", "Create a valid payment"},
			{"bad-email", "Create payment with an invalid email"},
			{"empty-cart", "Create payment with no items"},
			{"callback", "Post a fake gateway callback"},
			{"products", "List the product catalog"},
			{"users", "User CRUD round trip"},
		},
		status: "Ready",
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up":
			if m.selectedScn > 0 {
				m.selectedScn--
			}
		case "down":
			if m.selectedScn < len(m.scenarios)-1 {
				m.selectedScn++
			}
		case "enter":
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.status = "Running..."
			return m, runScenarioCmd(m.scenarios[m.selectedScn].Name)
		}
	case scenarioResult:
		m.busy = false
		m.status = msg.status
		m.detail = msg.detail
	}
	return m, nil
}

func (m model) View() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "webflow-ecommerce smoke CLI")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Scenarios:")
	for i, scn := range m.scenarios {
		marker := " "
		if i == m.selectedScn {
			marker = ">"
		}
		fmt.Fprintf(b, " %s %s - %s\n", marker, scn.Name, scn.Description)
	}
	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Status: %s\n", m.status)
	if m.detail != "" {
		fmt.Fprintf(b, "Detail: %s\n", m.detail)
	}
	fmt.Fprintln(b, "\nControls: up/down select scenario, enter to run, q to quit")
	return b.String()
}

type scenarioResult struct {
	status string
	detail string
}

func runScenarioCmd(scn string) tea.Cmd {
	return func() tea.Msg {
		baseURL := strings.TrimRight(getenv("STORE_BASE_URL", "http://localhost:8080"), "/")
		switch scn {
		case "bad-email":
			body, err := postJSON(baseURL+"/api/agilpay/create-payment", samplePayment("not-an-email"))
			return expectFailure("bad-email", body, err)
		case "empty-cart":
			req := samplePayment("juan@example.com")
			req["items"] = []any{}
			body, err := postJSON(baseURL+"/api/agilpay/create-payment", req)
			return expectFailure("empty-cart", body, err)
		case "callback":
			body, err := postForm(baseURL+"/api/agilpay/payment-response", url.Values{
				"OrderId": {"smoke-test"},
				"Status":  {"Approved"},
			})
			if err != nil {
				return scenarioResult{status: fmt.Sprintf("Callback failed: %v", err)}
			}
			return scenarioResult{status: "Callback OK", detail: body}
		case "products":
			body, err := get(baseURL + "/api/agilpay/products")
			if err != nil {
				return scenarioResult{status: fmt.Sprintf("Products failed: %v", err)}
			}
			return scenarioResult{status: "Products OK", detail: body}
		case "users":
			return runUserCrud(baseURL)
		default:
			body, err := postJSON(baseURL+"/api/agilpay/create-payment", samplePayment("juan@example.com"))
			if err != nil {
				return scenarioResult{status: fmt.Sprintf("Payment failed: %v", err)}
			}
			return scenarioResult{status: "Payment OK", detail: body}
		}
	}
}

func samplePayment(email string) map[string]any {
	return map[string]any{
		"customer_name":    "Juan Pérez",
		"customer_email":   email,
		"customer_address": "Calle 123",
		"items": []map[string]any{
			{"name": "Producto Premium A", "price": 99.99, "quantity": 1},
			{"name": "Producto Básico C", "price": 29.99, "quantity": 2},
		},
	}
}

func expectFailure(name, body string, err error) scenarioResult {
	if err != nil {
		return scenarioResult{status: fmt.Sprintf("%s rejected as expected", name), detail: err.Error()}
	}
	return scenarioResult{status: fmt.Sprintf("%s unexpectedly accepted", name), detail: body}
}

func runUserCrud(baseURL string) scenarioResult {
	suffix := time.Now().UnixNano()
	created, err := postJSON(baseURL+"/api/users", map[string]any{
		"username": fmt.Sprintf("smoke%d", suffix),
		"email":    fmt.Sprintf("smoke%d@example.com", suffix),
	})
	if err != nil {
		return scenarioResult{status: fmt.Sprintf("User create failed: %v", err)}
	}
	var resp struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(created), &resp); err != nil || resp.Data.ID == 0 {
		return scenarioResult{status: "User create returned no id", detail: created}
	}
	idURL := fmt.Sprintf("%s/api/users/%d", baseURL, resp.Data.ID)
	if _, err := get(idURL); err != nil {
		return scenarioResult{status: fmt.Sprintf("User get failed: %v", err)}
	}
	if _, err := del(idURL); err != nil {
		return scenarioResult{status: fmt.Sprintf("User delete failed: %v", err)}
	}
	return scenarioResult{status: "User CRUD OK", detail: created}
}

func postJSON(rawURL string, payload any) (string, error) {
	data, _ := json.Marshal(payload)
	req, err := newRequest(http.MethodPost, rawURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	return do(req)
}

func postForm(rawURL string, values url.Values) (string, error) {
	req, err := newRequest(http.MethodPost, rawURL, strings.NewReader(values.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(req)
}

func get(rawURL string) (string, error) {
	req, err := newRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	return do(req)
}

func del(rawURL string) (string, error) {
	req, err := newRequest(http.MethodDelete, rawURL, nil)
	if err != nil {
		return "", err
	}
	return do(req)
}

var httpClient = &http.Client{Timeout: 35 * time.Second}

func newRequest(method, rawURL string, body io.Reader) (*http.Request, error) {
	return http.NewRequest(method, rawURL, body)
}

func do(req *http.Request) (string, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func main() {
	runCmd := flag.String("run", "", "run scenario: payment|bad-email|empty-cart|callback|products|users")
	flag.Parse()

	if *runCmd != "" {
		res := runScenarioCmd(*runCmd)().(scenarioResult)
		fmt.Println(res.status)
		if res.detail != "" {
			fmt.Println(res.detail)
		}
		return
	}

	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
