package entity

import "context"

type CtxKeyLogger struct{}

type ctxKeyToken struct{}

func CtxWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKeyToken{}, token)
}

func TokenFromCtx(ctx context.Context) (string, error) {
	token, ok := ctx.Value(ctxKeyToken{}).(string)
	if !ok || token == "" {
		return "", ErrUnauthenticated
	}

	return token, nil
}
