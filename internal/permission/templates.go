package permission

const (
	AdminRoleName = "Admin"
	UserRoleName  = "User"
)

// AdminGrid grants every action on every page.
func AdminGrid() Grid {
	return ApplyFullAccess(Grid{})
}

// UserGrid is the default staff role: read employees and jobs, keep own timebook.
func UserGrid() Grid {
	g := Grid{}.Normalize()
	g[PageEmployees][ActionList] = true
	g[PageJobs][ActionList] = true
	g[PageTimebooks][ActionList] = true
	g[PageTimebooks][ActionCreate] = true
	g[PageTimebooks][ActionEdit] = true
	return g
}
