package domain

import (
	"context"
	"fmt"
)

type ctxKey int

const ctxUserInfo ctxKey = iota

const (
	CtxUnknownUserId    UserIdentifier    = "_EP_SYS_UNKNOWN_"
	CtxUnknownCompanyId CompanyIdentifier = ""
)

// ContextUserInfo carries the identity of the caller for the duration of a
// request. It is populated by the authentication middleware; until a real
// identity provider is attached, the resolver falls back to configured
// defaults.
type ContextUserInfo struct {
	Id        UserIdentifier
	CompanyId CompanyIdentifier
}

func (u *ContextUserInfo) String() string {
	return fmt.Sprintf("%s|%s", u.Id, u.CompanyId)
}

func (u *ContextUserInfo) UserId() string {
	return string(u.Id)
}

func DefaultContextUserInfo() *ContextUserInfo {
	return &ContextUserInfo{
		Id:        CtxUnknownUserId,
		CompanyId: CtxUnknownCompanyId,
	}
}

func SetUserInfo(ctx context.Context, info *ContextUserInfo) context.Context {
	return context.WithValue(ctx, ctxUserInfo, info)
}

func GetUserInfo(ctx context.Context) *ContextUserInfo {
	rawInfo := ctx.Value(ctxUserInfo)
	if rawInfo == nil {
		return DefaultContextUserInfo()
	}

	if info, ok := rawInfo.(*ContextUserInfo); ok {
		return info
	}

	return DefaultContextUserInfo()
}
