package catalog

// Branch 院系分支
// 目录按分支划分，登录时选择的分支决定可见的图书
type Branch string

const (
	BranchCSE   Branch = "CSE"
	BranchECE   Branch = "ECE"
	BranchEEE   Branch = "EEE"
	BranchCIVIL Branch = "CIVIL"
)

// Branches 返回全部分支（按展示顺序）
func Branches() []Branch {
	return []Branch{BranchCSE, BranchECE, BranchEEE, BranchCIVIL}
}

// Valid 是否为已知分支
func (b Branch) Valid() bool {
	switch b {
	case BranchCSE, BranchECE, BranchEEE, BranchCIVIL:
		return true
	default:
		return false
	}
}

func (b Branch) String() string {
	return string(b)
}

// Book 图书记录(只读)
// 说明:
// 1. 启动时由静态数据构造一次,运行期间不会修改
// 2. ID只在分支内唯一,不同分支可以出现相同ID
// 3. 价格为非负小数,与购物车快照保持同样的精度
type Book struct {
	ID        string
	Title     string
	Author    string
	Publisher string
	Price     float64
	Image     string
}
