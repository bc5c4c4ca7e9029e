package storefront

import (
	"context"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/session"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
)

// Intent 用户意图
type Intent string

const (
	IntentLogin          Intent = "login"
	IntentForgotPassword Intent = "forgot_password"
	IntentSelectBranch   Intent = "select_branch"
	IntentListCatalogue  Intent = "list_catalogue"
	IntentViewCart       Intent = "view_cart"
	IntentAddToCart      Intent = "add_to_cart"
	IntentAdjustQuantity Intent = "adjust_quantity"
	IntentRemoveFromCart Intent = "remove_from_cart"
	IntentClearCart      Intent = "clear_cart"
	IntentCheckout       Intent = "checkout"
)

// Outcome 意图执行结果
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected" // 校验失败或未登录
	OutcomeFailed   Outcome = "failed"   // 存储等内部错误
)

// outcomeOf 根据错误判断执行结果
func outcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	switch apperrors.GetAppError(err).Code {
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidParams, apperrors.ErrCodeBindError:
		return OutcomeRejected
	default:
		return OutcomeFailed
	}
}

// Event 意图执行完成后通知给监听者的快照
type Event struct {
	Intent  Intent
	Outcome Outcome
	Err     error

	Session session.Snapshot
	Cart    []cart.LineItem
	Totals  cart.Totals

	// Billed 结账时清空前的应付金额，其他意图为nil
	Billed *cart.Totals
}

// Listener 意图监听者（指标、日志等）
// 在意图执行完成后同步调用，不应阻塞
type Listener interface {
	OnEvent(ctx context.Context, event Event)
}

// ListenerFunc 函数适配为Listener
type ListenerFunc func(ctx context.Context, event Event)

// OnEvent 实现Listener
func (f ListenerFunc) OnEvent(ctx context.Context, event Event) {
	f(ctx, event)
}
