package rbac

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Role grants, seeded at enforcer construction. Requests follow the approval
// chain roles; payroll and audit are restricted to the specialist roles.
var defaultPolicies = [][3]string{
	{"employee", "request", "create"},
	{"employee", "request", "read"},
	{"manager", "request", "read"},
	{"manager", "request", "approve"},
	{"hr_manager", "request", "approve"},
	{"hr_manager", "payroll", "calculate"},
	{"hr_manager", "payroll", "read"},
	{"finance_manager", "request", "approve"},
	{"finance_manager", "payroll", "read"},
	{"auditor", "audit", "generate"},
	{"auditor", "audit", "read"},
	{"auditor", "audit", "export"},
	{"auditor", "audit", "schedule"},
}

// Seniority implies the junior role's grants.
var defaultGroupings = [][2]string{
	{"manager", "employee"},
	{"hr_manager", "manager"},
	{"finance_manager", "manager"},
	{"ceo", "hr_manager"},
	{"ceo", "finance_manager"},
	{"ceo", "auditor"},
	{"hr_manager", "auditor"},
}
