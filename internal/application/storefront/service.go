package storefront

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/catalog"
	"github.com/xiebiao/storefront/internal/domain/session"
	"github.com/xiebiao/storefront/pkg/tracing"
)

const tracerName = "storefront"

// Service 店面应用服务
// 设计说明：
// 1. 把用户意图翻译为对Session Gate、目录、购物车的调用
// 2. 除登录和忘记密码外，所有意图都要求会话已登录
// 3. 每个意图执行完成后通知监听者（指标、日志）
type Service struct {
	gate      *session.Gate
	catalogue catalog.Provider
	cart      *cart.Store
	logger    *slog.Logger

	mu        sync.RWMutex
	listeners []Listener
}

// NewService 创建应用服务
func NewService(gate *session.Gate, catalogue catalog.Provider, store *cart.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gate:      gate,
		catalogue: catalogue,
		cart:      store,
		logger:    logger,
	}
}

// Subscribe 注册监听者
func (s *Service) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	Branch   string
}

// SubmitLogin 提交登录表单
// 校验失败返回40900，错误中携带每个字段的提示
func (s *Service) SubmitLogin(ctx context.Context, req LoginRequest) (*SessionView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "storefront.SubmitLogin")
	defer span.End()

	err := s.gate.SubmitLogin(req.Username, req.Password, catalog.Branch(req.Branch)).Err()
	s.emit(ctx, IntentLogin, err, nil)
	tracing.RecordError(span, err)
	if err != nil {
		return nil, err
	}

	return newSessionView(s.gate.Snapshot()), nil
}

// ForgotPassword 忘记密码（模拟，不改变任何状态）
func (s *Service) ForgotPassword(ctx context.Context, identifier string) (*ForgotPasswordResult, error) {
	notice, errs := session.ValidateForgotPassword(identifier)
	if err := errs.Err(); err != nil {
		s.emit(ctx, IntentForgotPassword, err, nil)
		return nil, err
	}

	s.emit(ctx, IntentForgotPassword, nil, nil)
	return &ForgotPasswordResult{Notice: notice}, nil
}

// Session 当前会话快照
func (s *Service) Session() *SessionView {
	return newSessionView(s.gate.Snapshot())
}

// SelectBranch 切换分支
func (s *Service) SelectBranch(ctx context.Context, branch string) (*SessionView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "storefront.SelectBranch")
	defer span.End()
	span.SetAttributes(attribute.String("branch", branch))

	err := s.gate.ChangeBranch(catalog.Branch(branch))
	s.emit(ctx, IntentSelectBranch, err, nil)
	tracing.RecordError(span, err)
	if err != nil {
		return nil, err
	}

	return newSessionView(s.gate.Snapshot()), nil
}

// ListCatalogue 列出图书目录
// branch为空时使用当前会话的分支；未知分支返回空目录
func (s *Service) ListCatalogue(ctx context.Context, branch string) (*CatalogueView, error) {
	snap, err := s.requireActive(ctx, IntentListCatalogue)
	if err != nil {
		return nil, err
	}

	b := catalog.Branch(branch)
	if b == "" {
		b = snap.Branch
	}
	return newCatalogueView(b, s.catalogue.ListBooks(b)), nil
}

// ViewCart 查看购物车
func (s *Service) ViewCart(ctx context.Context) (*CartView, error) {
	if _, err := s.requireActive(ctx, IntentViewCart); err != nil {
		return nil, err
	}
	return newCartView(s.cart.Snapshot(ctx)), nil
}

// AddToCart 加入购物车
// branch为空时使用当前会话的分支；目录中不存在的图书直接忽略
func (s *Service) AddToCart(ctx context.Context, bookID, branch string) (*CartView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "storefront.AddToCart")
	defer span.End()
	span.SetAttributes(attribute.String("book_id", bookID), attribute.String("branch", branch))

	snap, err := s.requireActive(ctx, IntentAddToCart)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	b := catalog.Branch(branch)
	if b == "" {
		b = snap.Branch
	}

	book, ok := s.catalogue.FindBook(b, bookID)
	if !ok {
		s.logger.DebugContext(ctx, "book not in catalogue, ignored", "book_id", bookID, "branch", b)
	} else {
		err = s.cart.AddItem(ctx, book, b)
	}

	return s.finishCartIntent(ctx, span, IntentAddToCart, err)
}

// AdjustQuantity 调整数量（delta可以为负，数量最小为1）
func (s *Service) AdjustQuantity(ctx context.Context, id, branch string, delta int) (*CartView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "storefront.AdjustQuantity")
	defer span.End()
	span.SetAttributes(attribute.String("book_id", id), attribute.Int("delta", delta))

	if _, err := s.requireActive(ctx, IntentAdjustQuantity); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	err := s.cart.ChangeQuantity(ctx, id, catalog.Branch(branch), delta)
	return s.finishCartIntent(ctx, span, IntentAdjustQuantity, err)
}

// RemoveFromCart 删除明细项
func (s *Service) RemoveFromCart(ctx context.Context, id, branch string) (*CartView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "storefront.RemoveFromCart")
	defer span.End()
	span.SetAttributes(attribute.String("book_id", id))

	if _, err := s.requireActive(ctx, IntentRemoveFromCart); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	err := s.cart.RemoveItem(ctx, id, catalog.Branch(branch))
	return s.finishCartIntent(ctx, span, IntentRemoveFromCart, err)
}

// ClearCart 清空购物车
func (s *Service) ClearCart(ctx context.Context) (*CartView, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "storefront.ClearCart")
	defer span.End()

	if _, err := s.requireActive(ctx, IntentClearCart); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	err := s.cart.Clear(ctx)
	return s.finishCartIntent(ctx, span, IntentClearCart, err)
}

// Checkout 结账
// 取出并清空购物车是一次原子操作，应付金额按取出的明细计算；没有真实支付
func (s *Service) Checkout(ctx context.Context) (*CheckoutResult, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "storefront.Checkout")
	defer span.End()

	if _, err := s.requireActive(ctx, IntentCheckout); err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	items, err := s.cart.Checkout(ctx)
	billed := cart.ComputeTotals(items)
	display := billed.Display()
	span.SetAttributes(attribute.String("grand_total", display.GrandTotal))

	s.emit(ctx, IntentCheckout, err, &billed)
	tracing.RecordError(span, err)
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Billed: display,
		Lines:  len(items),
		Units:  units(items),
		Notice: fmt.Sprintf("结账成功，应付总额: %s（演示环境，不会真实扣款）", display.GrandTotal),
	}, nil
}

// requireActive 要求已登录，未登录时同样通知监听者
func (s *Service) requireActive(ctx context.Context, intent Intent) (session.Snapshot, error) {
	snap := s.gate.Snapshot()
	if !snap.Active() {
		s.emit(ctx, intent, session.ErrNotActive, nil)
		return snap, session.ErrNotActive
	}
	return snap, nil
}

// finishCartIntent 购物车意图的收尾：通知监听者并返回最新快照
// 存储写入失败时内存中的购物车已更新，仍然返回错误
func (s *Service) finishCartIntent(ctx context.Context, span trace.Span, intent Intent, err error) (*CartView, error) {
	s.emit(ctx, intent, err, nil)
	tracing.RecordError(span, err)
	if err != nil {
		return nil, err
	}
	return newCartView(s.cart.Snapshot(ctx)), nil
}

// emit 同步通知所有监听者
func (s *Service) emit(ctx context.Context, intent Intent, err error, billed *cart.Totals) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	if len(listeners) == 0 {
		return
	}

	items := s.cart.Snapshot(ctx)
	event := Event{
		Intent:  intent,
		Outcome: outcomeOf(err),
		Err:     err,
		Session: s.gate.Snapshot(),
		Cart:    items,
		Totals:  cart.ComputeTotals(items),
		Billed:  billed,
	}

	for _, l := range listeners {
		l.OnEvent(ctx, event)
	}
}
