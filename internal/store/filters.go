package store

import "gorm.io/gorm"

// ByCompany restricts users to a single company.
func ByCompany(companyID uint) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// ByCompanyIn restricts users to a set of companies.
func ByCompanyIn(companyIDs []uint) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id IN ?", companyIDs)
	}
}

// IDIn restricts any entity to an explicit id set.
func IDIn(ids []uint) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	}
}

// AdminInCompanies keeps admins linked to at least one of the given
// companies. A subquery instead of a join so a multi-company match still
// yields one row.
func AdminInCompanies(companyIDs []uint) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (SELECT admin_id FROM admin_companies WHERE company_id IN ?)", companyIDs)
	}
}

// AccountInGroups keeps accounts that share at least one of the given groups.
func AccountInGroups(groupIDs []uint) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (SELECT account_id FROM group_accounts WHERE group_id IN ?)", groupIDs)
	}
}

// VMInGroups keeps vms that belong to at least one of the given groups.
func VMInGroups(groupIDs []uint) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (SELECT vm_id FROM group_vms WHERE group_id IN ?)", groupIDs)
	}
}

// ByServer restricts vms to one server.
func ByServer(serverID uint) Filter {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("server_id = ?", serverID)
	}
}
