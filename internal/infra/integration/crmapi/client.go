package crmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/corecrm/crm-sync/internal/entity"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FindContactsByLead: GET /api/contacts?leadId={id}
// Lista vazia não é erro: nem todo Lead tem Contact.
func (c *Client) FindContactsByLead(ctx context.Context, sess Session, leadID string) ([]entity.Contact, error) {
	if sess.Token == "" {
		return nil, ErrNoSession
	}

	endpoint := fmt.Sprintf("%s/api/contacts?leadId=%s", c.baseURL, url.QueryEscape(leadID))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, sess)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request crm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ CRM: erro ao buscar contatos do lead %s (status %d): %s", leadID, resp.StatusCode, string(body))
		return nil, fmt.Errorf("erro ao buscar contatos (status %d)", resp.StatusCode)
	}

	var contacts []entity.Contact
	if err := json.NewDecoder(resp.Body).Decode(&contacts); err != nil {
		return nil, fmt.Errorf("erro decode contatos: %w", err)
	}

	return contacts, nil
}

// UpdateContact: PUT /api/contacts/{id}
func (c *Client) UpdateContact(ctx context.Context, sess Session, id string, input UpdateContactInput) (*entity.Contact, error) {
	if sess.Token == "" {
		return nil, ErrNoSession
	}

	endpoint := fmt.Sprintf("%s/api/contacts/%s", c.baseURL, url.PathEscape(id))

	jsonBody, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal contato: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, sess)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request crm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, entity.ErrContactNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ CRM: erro ao atualizar contato %s (status %d): %s", id, resp.StatusCode, string(body))
		return nil, fmt.Errorf("erro ao atualizar contato (status %d)", resp.StatusCode)
	}

	var updated entity.Contact
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("erro decode contato: %w", err)
	}

	return &updated, nil
}

// GetLead: GET /api/leads/{id}. 404 vira entity.ErrLeadNotFound: o sync
// trata como fim de fluxo legítimo, não como falha.
func (c *Client) GetLead(ctx context.Context, sess Session, id string) (*entity.Lead, error) {
	if sess.Token == "" {
		return nil, ErrNoSession
	}

	endpoint := fmt.Sprintf("%s/api/leads/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, sess)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request crm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, entity.ErrLeadNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ CRM: erro ao buscar lead %s (status %d): %s", id, resp.StatusCode, string(body))
		return nil, fmt.Errorf("erro ao buscar lead (status %d)", resp.StatusCode)
	}

	var lead entity.Lead
	if err := json.NewDecoder(resp.Body).Decode(&lead); err != nil {
		return nil, fmt.Errorf("erro decode lead: %w", err)
	}

	return &lead, nil
}

// UpdateLead: PUT /api/leads/{id}
func (c *Client) UpdateLead(ctx context.Context, sess Session, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if sess.Token == "" {
		return nil, ErrNoSession
	}

	endpoint := fmt.Sprintf("%s/api/leads/%s", c.baseURL, url.PathEscape(id))

	jsonBody, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("erro ao marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, sess)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request crm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, entity.ErrLeadNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ CRM: erro ao atualizar lead %s (status %d): %s", id, resp.StatusCode, string(body))
		return nil, fmt.Errorf("erro ao atualizar lead (status %d)", resp.StatusCode)
	}

	var updated entity.Lead
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return nil, fmt.Errorf("erro decode lead: %w", err)
	}

	return &updated, nil
}

// GetDeletionInfo: GET /api/{entity}/{id}/delete-info
// O chamador (Deletion Guard) decide o que fazer se isso falhar.
func (c *Client) GetDeletionInfo(ctx context.Context, sess Session, entityType, id string) (*entity.DeletionCheck, error) {
	if sess.Token == "" {
		return nil, ErrNoSession
	}

	endpoint := fmt.Sprintf("%s/api/%s/%s/delete-info", c.baseURL, url.PathEscape(entityType), url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, sess)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request crm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("delete-info indisponível (status %d)", resp.StatusCode)
	}

	var envelope deletionInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("erro decode delete-info: %w", err)
	}

	check := &entity.DeletionCheck{
		CanDelete:    envelope.DeletionCheck.CanDelete,
		Blockers:     envelope.DeletionCheck.Blockers,
		Warnings:     envelope.DeletionCheck.Warnings,
		Dependencies: make([]entity.Dependency, 0, len(envelope.DeletionCheck.Dependencies)),
	}
	if check.Blockers == nil {
		check.Blockers = []string{}
	}
	if check.Warnings == nil {
		check.Warnings = []string{}
	}
	for _, dep := range envelope.DeletionCheck.Dependencies {
		check.Dependencies = append(check.Dependencies, entity.Dependency{Type: dep.Type, Message: dep.Message})
	}

	return check, nil
}

// SoftDelete: POST /api/{entity}/{id}/soft-delete: marca inativo, não apaga.
func (c *Client) SoftDelete(ctx context.Context, sess Session, entityType, id string, input SoftDeleteInput) error {
	if sess.Token == "" {
		return ErrNoSession
	}

	endpoint := fmt.Sprintf("%s/api/%s/%s/soft-delete", c.baseURL, url.PathEscape(entityType), url.PathEscape(id))

	jsonBody, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("erro ao marshal soft-delete: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req, sess)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro request crm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("❌ CRM: soft-delete de %s/%s rejeitado (status %d): %s", entityType, id, resp.StatusCode, string(body))
		return fmt.Errorf("soft-delete rejeitado (status %d)", resp.StatusCode)
	}

	var result softDeleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// Alguns ambientes respondem 204 sem corpo. Status 2xx já basta.
		return nil
	}
	if !result.Success && result.Message != "" {
		return fmt.Errorf("soft-delete falhou: %s", result.Message)
	}

	return nil
}

// GetDealStages: GET /api/deals/stages: lista configurável de estágios.
// O fallback para os seis padrões fica no handler, igual ao front fazia.
func (c *Client) GetDealStages(ctx context.Context, sess Session) ([]string, error) {
	if sess.Token == "" {
		return nil, ErrNoSession
	}

	endpoint := fmt.Sprintf("%s/api/deals/stages", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, sess)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro request crm: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("endpoint de estágios indisponível (status %d)", resp.StatusCode)
	}

	var result dealStagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("erro decode estágios: %w", err)
	}
	if len(result.Stages) == 0 {
		return nil, fmt.Errorf("lista de estágios vazia")
	}

	return result.Stages, nil
}

// setHeaders centraliza os headers obrigatórios
func (c *Client) setHeaders(req *http.Request, sess Session) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", sess.Token))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CoreCRM-Sync/1.0")
}
