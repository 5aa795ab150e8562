// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

// Package soap serves the cart repository operations over SOAP 1.2.
package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mendersoftware/go-lib-micro/identity"
	"github.com/mendersoftware/go-lib-micro/log"
	"github.com/mendersoftware/go-lib-micro/requestid"
	"github.com/pkg/errors"

	"github.com/mendersoftware/carts/model"
	"github.com/mendersoftware/carts/repository"
	"github.com/mendersoftware/carts/utils"
)

const (
	NamespaceSOAP12  = "http://www.w3.org/2003/05/soap-envelope"
	NamespaceService = "urn:mendersoftware:carts:v1"

	ContentType = "application/soap+xml; charset=utf-8"

	OpGet     = "quoteCartRepositoryV1Get"
	OpGetList = "quoteCartRepositoryV1GetList"

	maxRequestSize = 1 << 20

	queryParamTenantID = "tenant_id"
)

// legacy operation names
var operationAliases = map[string]string{
	"quoteQuoteRepositoryV1GetCart":     OpGet,
	"quoteQuoteRepositoryV1GetCartList": OpGetList,
}

const (
	faultVersionMismatch = "env:VersionMismatch"
	faultSender          = "env:Sender"
	faultReceiver        = "env:Receiver"
)

type Handler struct {
	carts repository.CartRepository
}

func NewHandler(c repository.CartRepository) *Handler {
	return &Handler{carts: c}
}

func (h *Handler) requestContext(w http.ResponseWriter, r *http.Request) context.Context {
	reqID := r.Header.Get(requestid.RequestIdHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	w.Header().Set(requestid.RequestIdHeader, reqID)

	ctx := requestid.WithContext(r.Context(), reqID)
	l := log.New(log.Ctx{
		"request_id": reqID,
		"path":       r.URL.Path,
		"method":     r.Method,
	})
	return log.WithContext(ctx, l)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := h.requestContext(w, r)
	l := log.FromContext(ctx)

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, err := callerContext(ctx, r)
	if err != nil {
		h.fault(w, l, faultSender, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestSize))
	if err != nil {
		h.fault(w, l, faultSender, errors.Wrap(err, "failed to read request"))
		return
	}

	var env envelope
	if err := xml.Unmarshal(body, &env); err != nil {
		h.fault(w, l, faultSender, errors.Wrap(err, "malformed envelope"))
		return
	}
	if env.XMLName.Local != "Envelope" {
		h.fault(w, l, faultSender, errors.New("malformed envelope: no Envelope element"))
		return
	}
	if env.XMLName.Space != NamespaceSOAP12 {
		h.fault(w, l, faultVersionMismatch,
			errors.Errorf("unsupported envelope namespace %q", env.XMLName.Space))
		return
	}

	dec := xml.NewDecoder(bytes.NewReader(env.Body.Inner))
	start, err := firstElement(dec)
	if err != nil {
		h.fault(w, l, faultSender, err)
		return
	}

	op := strings.TrimSuffix(start.Name.Local, "Request")
	if alias, ok := operationAliases[op]; ok {
		op = alias
	}
	l.Debugf("soap operation %s", op)

	switch op {
	case OpGet:
		h.get(ctx, w, l, dec, start, op)
	case OpGetList:
		h.getList(ctx, w, l, dec, start, op)
	default:
		h.fault(w, l, faultSender, errors.Errorf("Operation %q not found", start.Name.Local))
	}
}

// callerContext scopes ctx to the caller's tenant, taken from the bearer
// token or, without one, from the tenant_id query parameter.
func callerContext(ctx context.Context, r *http.Request) (context.Context, error) {
	if r.Header.Get("Authorization") == "" {
		if tenant := r.URL.Query().Get(queryParamTenantID); tenant != "" {
			ctx = identity.WithContext(ctx, &identity.Identity{Tenant: tenant})
		}
		return ctx, nil
	}
	idata, err := utils.IdentityFromRequest(r)
	if err != nil {
		return ctx, errors.Wrap(err, "unauthorized")
	}
	if idata.Tenant != "" {
		ctx = identity.WithContext(ctx, &idata)
	}
	return ctx, nil
}

func firstElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return xml.StartElement{}, errors.New("empty SOAP body")
		} else if err != nil {
			return xml.StartElement{}, errors.Wrap(err, "malformed SOAP body")
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

func (h *Handler) get(
	ctx context.Context,
	w http.ResponseWriter,
	l *log.Logger,
	dec *xml.Decoder,
	start xml.StartElement,
	op string,
) {
	var req getRequest
	if err := dec.DecodeElement(&req, &start); err != nil {
		h.fault(w, l, faultSender, errors.Wrap(err, "malformed request"))
		return
	}
	id, err := model.ParseCartID(strings.TrimSpace(req.CartID))
	if err != nil {
		h.fault(w, l, faultSender, errors.New("invalid cart id"))
		return
	}

	cart, err := h.carts.GetCart(ctx, id)
	if err != nil {
		h.repositoryFault(w, l, err)
		return
	}

	h.respond(w, l, &getResponse{
		XMLName: xml.Name{Local: "ns1:" + op + "Response"},
		Result:  newCartXML(cart),
	})
}

func (h *Handler) getList(
	ctx context.Context,
	w http.ResponseWriter,
	l *log.Logger,
	dec *xml.Decoder,
	start xml.StartElement,
	op string,
) {
	var req getListRequest
	if err := dec.DecodeElement(&req, &start); err != nil {
		h.fault(w, l, faultSender, errors.Wrap(err, "malformed request"))
		return
	}

	res, err := h.carts.SearchCarts(ctx, req.SearchCriteria.model())
	if err != nil {
		h.repositoryFault(w, l, err)
		return
	}

	result := searchResultXML{
		Items:          make([]cartXML, 0, len(res.Items)),
		SearchCriteria: newSearchCriteriaXML(res.SearchCriteria),
		TotalCount:     res.TotalCount,
	}
	for i := range res.Items {
		result.Items = append(result.Items, newCartXML(&res.Items[i]))
	}
	h.respond(w, l, &getListResponse{
		XMLName: xml.Name{Local: "ns1:" + op + "Response"},
		Result:  result,
	})
}

func (h *Handler) repositoryFault(w http.ResponseWriter, l *log.Logger, err error) {
	var (
		notFound *repository.NotFoundError
		invalid  *repository.InvalidSearchError
	)
	if errors.As(err, &notFound) || errors.As(err, &invalid) {
		h.fault(w, l, faultSender, err)
		return
	}
	h.fault(w, l, faultReceiver, err)
}

func (h *Handler) fault(w http.ResponseWriter, l *log.Logger, code string, err error) {
	msg := err.Error()
	status := http.StatusInternalServerError
	if code == faultSender {
		status = http.StatusBadRequest
		l.Error(msg)
	} else {
		l.Errorf("%s: %s", code, msg)
	}
	if code == faultReceiver {
		msg = "internal error"
	}

	f := fault{Code: faultCode{Value: code}}
	f.Reason.Text.Lang = "en"
	f.Reason.Text.Value = msg
	h.write(w, l, status, responseEnvelope{
		EnvNS: NamespaceSOAP12,
		Body:  responseBody{Content: f},
	})
}

func (h *Handler) respond(w http.ResponseWriter, l *log.Logger, content interface{}) {
	h.write(w, l, http.StatusOK, responseEnvelope{
		EnvNS: NamespaceSOAP12,
		NS:    NamespaceService,
		Body:  responseBody{Content: content},
	})
}

func (h *Handler) write(w http.ResponseWriter, l *log.Logger, status int, env responseEnvelope) {
	out, err := xml.Marshal(env)
	if err != nil {
		l.Errorf("failed to encode SOAP response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}
