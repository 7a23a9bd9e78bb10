package handlers

import (
	"net/http"

	"github.com/tkrause/expense-portal/internal/app/api/core/request"
	"github.com/tkrause/expense-portal/internal/config"
	"github.com/tkrause/expense-portal/internal/domain"
)

const (
	UserIdHeader    = "X-User-Id"
	CompanyIdHeader = "X-Company-Id"
)

// tenantResolver derives the caller identity for each request. The identity
// is taken from the X-User-Id and X-Company-Id headers; missing headers fall
// back to the configured defaults. Authorization decisions stay with the
// individual handlers, the resolver only makes the identity available.
type tenantResolver struct {
	cfg *config.Config
}

func (t tenantResolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userId := request.HeaderDefault(r, UserIdHeader, t.cfg.Core.UserId)
		companyId := request.HeaderDefault(r, CompanyIdHeader, t.cfg.Core.CompanyId)

		info := domain.DefaultContextUserInfo()
		if userId != "" {
			info.Id = domain.UserIdentifier(userId)
		}
		info.CompanyId = domain.CompanyIdentifier(companyId)

		ctx := domain.SetUserInfo(r.Context(), info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
