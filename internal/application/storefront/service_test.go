package storefront

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/storefront/internal/domain/cart"
	"github.com/xiebiao/storefront/internal/domain/session"
	catalogimpl "github.com/xiebiao/storefront/internal/infrastructure/catalog"
	"github.com/xiebiao/storefront/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/storefront/pkg/errors"
	"github.com/xiebiao/storefront/pkg/logger"
)

// recorder 记录收到的事件
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) last(t *testing.T) Event {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.events)
	return r.events[len(r.events)-1]
}

// failingSlot 写入总是失败的存储槽
type failingSlot struct{}

func (failingSlot) Read(context.Context) ([]byte, error) { return nil, nil }
func (failingSlot) Write(context.Context, []byte) error  { return errors.New("disk full") }

func newTestService(t *testing.T, storage cart.Storage) (*Service, *recorder) {
	t.Helper()
	provider, err := catalogimpl.NewStaticProvider()
	require.NoError(t, err)

	log := logger.Discard()
	svc := NewService(session.NewGate(), provider, cart.NewStore(storage, log), log)
	rec := &recorder{}
	svc.Subscribe(rec)
	return svc, rec
}

func login(t *testing.T, svc *Service, branch string) {
	t.Helper()
	_, err := svc.SubmitLogin(context.Background(), LoginRequest{Username: "alice", Password: "secret", Branch: branch})
	require.NoError(t, err)
}

func TestService_SubmitLogin(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t, memory.NewSlot())

	_, err := svc.SubmitLogin(ctx, LoginRequest{Username: "ab", Password: "xyz", Branch: "CSE"})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	assert.Equal(t, map[string]string{session.FieldUsername: session.MsgUsernameTooShort}, appErr.Fields)
	assert.Equal(t, OutcomeRejected, rec.last(t).Outcome)
	assert.False(t, svc.Session().Active)

	view, err := svc.SubmitLogin(ctx, LoginRequest{Username: "  alice  ", Password: "secret", Branch: "CSE"})
	require.NoError(t, err)
	assert.True(t, view.Active)
	assert.Equal(t, "CSE", view.Branch)
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, []string{"CSE", "ECE", "EEE", "CIVIL"}, view.Branches)
	assert.Equal(t, IntentLogin, rec.last(t).Intent)
	assert.Equal(t, OutcomeOK, rec.last(t).Outcome)
}

func TestService_RequiresActiveSession(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t, memory.NewSlot())

	calls := map[Intent]func() error{
		IntentListCatalogue:  func() error { _, err := svc.ListCatalogue(ctx, ""); return err },
		IntentViewCart:       func() error { _, err := svc.ViewCart(ctx); return err },
		IntentAddToCart:      func() error { _, err := svc.AddToCart(ctx, "ai", "CSE"); return err },
		IntentAdjustQuantity: func() error { _, err := svc.AdjustQuantity(ctx, "ai", "CSE", 1); return err },
		IntentRemoveFromCart: func() error { _, err := svc.RemoveFromCart(ctx, "ai", "CSE"); return err },
		IntentClearCart:      func() error { _, err := svc.ClearCart(ctx); return err },
		IntentCheckout:       func() error { _, err := svc.Checkout(ctx); return err },
		IntentSelectBranch:   func() error { _, err := svc.SelectBranch(ctx, "ECE"); return err },
	}

	for intent, call := range calls {
		t.Run(string(intent), func(t *testing.T) {
			assert.ErrorIs(t, call(), session.ErrNotActive)
			assert.Equal(t, intent, rec.last(t).Intent)
			assert.Equal(t, OutcomeRejected, rec.last(t).Outcome)
		})
	}
}

func TestService_ListCatalogue(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, memory.NewSlot())
	login(t, svc, "ECE")

	view, err := svc.ListCatalogue(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "ECE", view.Branch)
	require.Len(t, view.Books, 2)
	assert.Equal(t, "dsp", view.Books[0].ID)
	assert.Equal(t, "$48.00", view.Books[0].PriceText)

	view, err = svc.ListCatalogue(ctx, "CIVIL")
	require.NoError(t, err)
	assert.Len(t, view.Books, 2)

	view, err = svc.ListCatalogue(ctx, "MECH")
	require.NoError(t, err)
	assert.Empty(t, view.Books)
}

func TestService_SelectBranch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, memory.NewSlot())
	login(t, svc, "CSE")

	view, err := svc.SelectBranch(ctx, "EEE")
	require.NoError(t, err)
	assert.Equal(t, "EEE", view.Branch)

	_, err = svc.SelectBranch(ctx, "MECH")
	assert.ErrorIs(t, err, session.ErrInvalidBranch)
	assert.Equal(t, "EEE", svc.Session().Branch)
}

// TestService_CartScenario 加购、调整、结账的完整流程
func TestService_CartScenario(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t, memory.NewSlot())
	login(t, svc, "CSE")

	_, err := svc.AddToCart(ctx, "ai", "")
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "ai", "CSE")
	require.NoError(t, err)

	view, err := svc.ViewCart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, "$126.00", view.Items[0].LineTotal)
	assert.Equal(t, cart.DisplayTotals{Subtotal: "$126.00", Tax: "$6.30", GrandTotal: "$132.30"}, view.Totals)

	view, err = svc.AdjustQuantity(ctx, "ai", "CSE", -5)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Items[0].Quantity)

	view, err = svc.AddToCart(ctx, "dsp", "ECE")
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "ECE", view.Items[1].Branch)
	assert.Equal(t, 2, view.Units)

	result, err := svc.Checkout(ctx)
	require.NoError(t, err)
	// 63 + 48 = 111, 税5.55
	assert.Equal(t, "$116.55", result.Billed.GrandTotal)
	assert.Equal(t, 2, result.Lines)
	assert.Contains(t, result.Notice, "$116.55")

	last := rec.last(t)
	assert.Equal(t, IntentCheckout, last.Intent)
	require.NotNil(t, last.Billed)
	assert.Equal(t, "$116.55", last.Billed.Display().GrandTotal)
	assert.Empty(t, last.Cart)

	view, err = svc.ViewCart(ctx)
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Equal(t, "$0.00", view.Totals.GrandTotal)
}

func TestService_AddUnknownBookIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t, memory.NewSlot())
	login(t, svc, "CSE")

	view, err := svc.AddToCart(ctx, "dsp", "CSE")
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Equal(t, OutcomeOK, rec.last(t).Outcome)
}

func TestService_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, memory.NewSlot())
	login(t, svc, "CIVIL")

	_, err := svc.AddToCart(ctx, "struct", "")
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "concrete", "")
	require.NoError(t, err)

	view, err := svc.RemoveFromCart(ctx, "struct", "CIVIL")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "concrete", view.Items[0].ID)

	// 不存在的明细项
	view, err = svc.RemoveFromCart(ctx, "missing", "CIVIL")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	view, err = svc.ClearCart(ctx)
	require.NoError(t, err)
	assert.True(t, view.Empty)
}

func TestService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t, failingSlot{})
	login(t, svc, "CSE")

	_, err := svc.AddToCart(ctx, "ai", "CSE")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStorageError, apperrors.GetAppError(err).Code)

	last := rec.last(t)
	assert.Equal(t, OutcomeFailed, last.Outcome)
	// 内存中的购物车已更新
	assert.Len(t, last.Cart, 1)

	view, err := svc.ViewCart(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
}

// unreadableSlot 读取失败的存储槽，记录写入次数
type unreadableSlot struct {
	mu     sync.Mutex
	writes int
}

func (u *unreadableSlot) Read(context.Context) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func (u *unreadableSlot) Write(context.Context, []byte) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.writes++
	return nil
}

func TestService_ReadFailureDoesNotOverwrite(t *testing.T) {
	ctx := context.Background()
	slot := &unreadableSlot{}
	svc, rec := newTestService(t, slot)
	login(t, svc, "CSE")

	view, err := svc.ViewCart(ctx)
	require.NoError(t, err)
	assert.True(t, view.Empty)

	_, err = svc.AddToCart(ctx, "ai", "CSE")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeStorageError, apperrors.GetAppError(err).Code)
	assert.Equal(t, OutcomeFailed, rec.last(t).Outcome)

	_, err = svc.Checkout(ctx)
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, rec.last(t).Outcome)

	assert.Zero(t, slot.writes)
}

// TestService_ConcurrentAddAndCheckout 并发加购与结账，每件商品恰好计费一次或仍留在购物车中
func TestService_ConcurrentAddAndCheckout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, memory.NewSlot())
	login(t, svc, "CSE")

	const (
		adders = 8
		perAdd = 40
	)

	var (
		wg     sync.WaitGroup
		done   = make(chan struct{})
		billed int
	)

	for i := 0; i < adders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perAdd; j++ {
				_, err := svc.AddToCart(ctx, "ai", "CSE")
				assert.NoError(t, err)
			}
		}()
	}

	checkoutDone := make(chan struct{})
	go func() {
		defer close(checkoutDone)
		for {
			select {
			case <-done:
				return
			default:
			}
			result, err := svc.Checkout(ctx)
			if assert.NoError(t, err) {
				billed += result.Units
			}
		}
	}()

	wg.Wait()
	close(done)
	<-checkoutDone

	view, err := svc.ViewCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, adders*perAdd, billed+view.Units)
}

// TestService_ConcurrentAddAndAdjust 并发加购与调整数量不丢失更新
func TestService_ConcurrentAddAndAdjust(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot()
	svc, _ := newTestService(t, slot)
	login(t, svc, "CSE")

	_, err := svc.AddToCart(ctx, "ai", "CSE")
	require.NoError(t, err)

	const (
		workers = 4
		rounds  = 25
	)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				_, err := svc.AddToCart(ctx, "ai", "CSE")
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				_, err := svc.AdjustQuantity(ctx, "ai", "CSE", 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	want := 1 + 2*workers*rounds
	view, err := svc.ViewCart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, want, view.Items[0].Quantity)

	// 存储槽中是最后一次写入的完整状态
	restarted, _ := newTestService(t, slot)
	login(t, restarted, "CSE")
	view, err = restarted.ViewCart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, want, view.Items[0].Quantity)
}

func TestService_ForgotPassword(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestService(t, memory.NewSlot())

	result, err := svc.ForgotPassword(ctx, " bob@example.com ")
	require.NoError(t, err)
	assert.Contains(t, result.Notice, "bob@example.com")
	assert.False(t, svc.Session().Active)

	_, err = svc.ForgotPassword(ctx, "   ")
	require.Error(t, err)
	assert.Equal(t, session.MsgIdentifierRequired, apperrors.GetAppError(err).Fields[session.FieldIdentifier])
	assert.Equal(t, OutcomeRejected, rec.last(t).Outcome)
}

func TestService_CartSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot()

	first, _ := newTestService(t, slot)
	login(t, first, "EEE")
	_, err := first.AddToCart(ctx, "power", "")
	require.NoError(t, err)

	// 新进程：会话需要重新登录，购物车从存储槽恢复
	second, _ := newTestService(t, slot)
	assert.False(t, second.Session().Active)
	login(t, second, "CSE")

	view, err := second.ViewCart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "power", view.Items[0].ID)
	assert.Equal(t, "EEE", view.Items[0].Branch)
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeOK, outcomeOf(nil))
	assert.Equal(t, OutcomeRejected, outcomeOf(session.ErrNotActive))
	assert.Equal(t, OutcomeRejected, outcomeOf(apperrors.ErrBindError))
	assert.Equal(t, OutcomeFailed, outcomeOf(apperrors.WrapStorage(errors.New("x"), "保存购物车失败")))
	assert.Equal(t, OutcomeFailed, outcomeOf(errors.New("plain")))
}
