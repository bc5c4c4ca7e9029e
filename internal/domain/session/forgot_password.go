package session

import (
	"fmt"
	"strings"
)

// ValidateForgotPassword 校验"忘记密码"表单
// 没有真实的服务端,校验通过后只返回模拟提示,不改变任何状态
func ValidateForgotPassword(identifier string) (string, FieldErrors) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return "", FieldErrors{FieldIdentifier: MsgIdentifierRequired}
	}
	return fmt.Sprintf("如果已连接服务器,重置链接将发送至: %s", identifier), nil
}
