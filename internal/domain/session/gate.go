package session

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/xiebiao/storefront/internal/domain/catalog"
)

// State 会话状态
type State int

const (
	StateUnauthenticated State = iota // 未登录(初始状态)
	StateActive                       // 已登录并选定分支
)

// String 实现Stringer接口(方便日志输出)
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// 登录表单的最小长度
const (
	MinUsernameLength = 3
	MinPasswordLength = 3
)

// Snapshot 会话快照
type Snapshot struct {
	State    State
	Branch   catalog.Branch // 未登录时为空
	Username string         // 去除首尾空格后的用户名
}

// Active 是否已登录
func (s Snapshot) Active() bool {
	return s.State == StateActive
}

// Gate 登录闸门(状态机)
// 状态流转:
//
//	Unauthenticated --SubmitLogin(校验通过)--> Active(branch)
//	Active(branch)  --ChangeBranch(b)-------> Active(b)
//
// 说明:
// 1. 登录只做前端式的格式校验,不校验真实凭证
// 2. 会话不持久化,进程重启后回到Unauthenticated
// 3. 没有登出流转
type Gate struct {
	mu       sync.RWMutex
	state    State
	branch   catalog.Branch
	username string
}

// NewGate 创建闸门(初始为未登录)
func NewGate() *Gate {
	return &Gate{state: StateUnauthenticated}
}

// SubmitLogin 提交登录
// 三项校验互不短路,每个失败字段都会报告自己的错误
// 全部通过时进入Active(branch)并返回nil;否则状态不变
func (g *Gate) SubmitLogin(username, password string, branch catalog.Branch) FieldErrors {
	username = strings.TrimSpace(username)

	errs := FieldErrors{}
	if utf8.RuneCountInString(username) < MinUsernameLength {
		errs[FieldUsername] = MsgUsernameTooShort
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		errs[FieldPassword] = MsgPasswordTooShort
	}
	if !branch.Valid() {
		errs[FieldBranch] = MsgBranchRequired
	}
	if !errs.Empty() {
		return errs
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = StateActive
	g.branch = branch
	g.username = username
	return nil
}

// ChangeBranch 切换分支(仅Active状态可用)
// 调用方随后应重新查询目录
func (g *Gate) ChangeBranch(branch catalog.Branch) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateActive {
		return ErrNotActive
	}
	if !branch.Valid() {
		return ErrInvalidBranch
	}

	g.branch = branch
	return nil
}

// Snapshot 返回当前会话快照
func (g *Gate) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return Snapshot{
		State:    g.state,
		Branch:   g.branch,
		Username: g.username,
	}
}

// IsActive 是否已登录
func (g *Gate) IsActive() bool {
	return g.Snapshot().Active()
}
