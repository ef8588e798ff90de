package models

import "time"

// Owner is the top-level principal. Owners are never scoped.
type Owner struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	HashedPassword string    `gorm:"size:60;not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Deleted        bool      `gorm:"not null;default:false" json:"deleted"`
}

// Admin is scoped to a set of companies via admin_companies.
type Admin struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	HashedPassword string    `gorm:"size:60;not null" json:"-"`
	Surname        string    `gorm:"size:100;not null" json:"surname"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Middlename     string    `gorm:"size:100" json:"middlename"`
	Department     string    `gorm:"size:100" json:"department"`
	Phone          string    `gorm:"size:20" json:"phone"`
	Cellular       string    `gorm:"size:20" json:"cellular"`
	Post           string    `gorm:"size:100" json:"post"`
	Companies      []Company `gorm:"many2many:admin_companies" json:"companies"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Deleted        bool      `gorm:"not null;default:false" json:"deleted"`
}

// User belongs to exactly one company.
type User struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username        string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	HashedPassword  string    `gorm:"size:60;not null" json:"-"`
	Surname         string    `gorm:"size:100;not null" json:"surname"`
	Name            string    `gorm:"size:100;not null" json:"name"`
	Middlename      string    `gorm:"size:100" json:"middlename"`
	Department      string    `gorm:"size:100" json:"department"`
	RemoteWorkplace string    `gorm:"size:20" json:"remote_workplace"`
	LocalWorkplace  string    `gorm:"size:20" json:"local_workplace"`
	Phone           string    `gorm:"size:20" json:"phone"`
	Cellular        string    `gorm:"size:20" json:"cellular"`
	Post            string    `gorm:"size:100" json:"post"`
	CompanyID       uint      `gorm:"not null;index" json:"company_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Deleted         bool      `gorm:"not null;default:false" json:"deleted"`
}

type Company struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username    string    `gorm:"size:50;not null" json:"username"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Deleted     bool      `gorm:"not null;default:false" json:"deleted"`
}

// Account is an inventory principal whose visibility flows through groups.
type Account struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	HashedPassword string    `gorm:"size:60;not null" json:"-"`
	Surname        string    `gorm:"size:100;not null;default:''" json:"surname"`
	Name           string    `gorm:"size:100;not null;default:''" json:"name"`
	Middlename     string    `gorm:"size:100;not null;default:''" json:"middlename"`
	Department     string    `gorm:"size:100;not null;default:''" json:"department"`
	Phone          string    `gorm:"size:20;not null;default:''" json:"phone"`
	Cellular       string    `gorm:"size:20;not null;default:''" json:"cellular"`
	Post           string    `gorm:"size:100;not null;default:''" json:"post"`
	Description    string    `gorm:"type:text;not null;default:''" json:"description"`
	Groups         []Group   `gorm:"many2many:group_accounts" json:"groups"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Deleted        bool      `gorm:"not null;default:false" json:"deleted"`
}

type Group struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	Accounts    []Account `gorm:"many2many:group_accounts" json:"accounts,omitempty"`
	VMs         []VM      `gorm:"many2many:group_vms" json:"vms,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Deleted     bool      `gorm:"not null;default:false" json:"deleted"`
}

type VM struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:50;not null;default:''" json:"name"`
	CPU         int       `gorm:"not null;default:0" json:"cpu"`
	RAM         int       `gorm:"not null;default:0" json:"ram"`
	SSD         int       `gorm:"not null;default:0" json:"ssd"`
	HDD         int       `gorm:"not null;default:0" json:"hdd"`
	State       bool      `gorm:"not null;default:false" json:"state"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	IPAddress   string    `gorm:"size:15;not null;default:''" json:"ip_address"`
	Username    string    `gorm:"size:50;not null;default:''" json:"username"`
	Password    string    `gorm:"size:50;not null;default:''" json:"-"`
	ServerID    uint      `gorm:"not null;index" json:"server_id"`
	Groups      []Group   `gorm:"many2many:group_vms" json:"groups,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Deleted     bool      `gorm:"not null;default:false" json:"deleted"`
}

func (VM) TableName() string { return "vms" }

type Server struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IPAddress   string    `gorm:"size:15;not null;default:''" json:"ip_address"`
	Name        string    `gorm:"size:50;not null;default:''" json:"name"`
	Specs       string    `gorm:"type:text;not null;default:''" json:"specs"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	Username    string    `gorm:"size:50;not null;default:''" json:"username"`
	Password    string    `gorm:"size:50;not null;default:''" json:"-"`
	VMs         []VM      `gorm:"constraint:OnDelete:CASCADE" json:"vms,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Deleted     bool      `gorm:"not null;default:false" json:"deleted"`
}

// Config rows are key/value pairs. No soft delete here.
type Config struct {
	Key   string `gorm:"size:50;primaryKey" json:"key"`
	Value string `gorm:"size:50;not null;default:''" json:"value"`
}

func (Config) TableName() string { return "config" }

// Log is an append-only before/after audit snapshot.
type Log struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Before    JSONB     `gorm:"type:jsonb;not null" json:"before"`
	After     JSONB     `gorm:"type:jsonb;not null" json:"after"`
	CreatedAt time.Time `json:"created_at"`
}

type Version struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:255;not null;default:''" json:"title"`
	Text      string    `gorm:"type:text;not null;default:''" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Deleted   bool      `gorm:"not null;default:false" json:"deleted"`
}
