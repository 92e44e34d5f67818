package feed

// Associate 外部接口返回的销售信息
type Associate struct {
	Name string `json:"name"`
}

// OrderRecord 外部订单记录，金额单位为分
type OrderRecord struct {
	ID                  string     `json:"id"`
	OrderNumber         string     `json:"orderNumber"`
	OrderPaidDate       string     `json:"orderPaidDate"`
	SubTotal            *int64     `json:"subTotal"`
	TipTotal            *int64     `json:"tipTotal"`
	SalesAssociate      *Associate `json:"salesAssociate"`
	ExternalOrderVendor *string    `json:"externalOrderVendor"`
}

// OrderPage 订单分页结果，Cursor 为空表示最后一页
type OrderPage struct {
	Orders []OrderRecord `json:"orders"`
	Cursor string        `json:"cursor"`
}

// ClubInfo 俱乐部信息
type ClubInfo struct {
	Title string `json:"title"`
}

// ClubRecord 会员俱乐部注册记录
type ClubRecord struct {
	ID             string     `json:"id"`
	Club           *ClubInfo  `json:"club"`
	SignupDate     string     `json:"signupDate"`
	SalesAssociate *Associate `json:"salesAssociate"`
}

// ClubPage 注册记录分页结果
type ClubPage struct {
	ClubMemberships []ClubRecord `json:"clubMemberships"`
	Cursor          string       `json:"cursor"`
}
