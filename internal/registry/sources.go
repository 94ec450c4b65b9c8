package registry

import "github.com/roach88/registry/internal/querysql"

// Logical sources exposed to find-owner and the listings. Field names are
// the only identifiers that ever reach SQL text, and only through here.
const (
	SourceOwners = "owners"
)

// Listing tables, in menu order.
var ListTables = []string{
	"users", "persons", "births", "marriages", "vehicles",
	"registrations", "tickets", "payments", "demerit_notices",
}

var sources = []querysql.Source{
	{
		Name: SourceOwners,
		// Only the current registration (latest expiry) of each vehicle,
		// so an old plate no longer finds the vehicle.
		From: `vehicles v
			JOIN registrations r ON r.regno = (
				SELECT r2.regno FROM registrations r2
				WHERE r2.vin = v.vin
				ORDER BY r2.expiry DESC, r2.regno DESC
				LIMIT 1)
			JOIN persons p ON p.id = r.owner_id`,
		Columns: []querysql.Column{
			{Field: "vin", Expr: "v.vin"},
			{Field: "make", Expr: "v.make"},
			{Field: "model", Expr: "v.model"},
			{Field: "year", Expr: "v.year"},
			{Field: "color", Expr: "v.color"},
			{Field: "plate", Expr: "r.plate"},
			{Field: "regno", Expr: "r.regno"},
			{Field: "expiry", Expr: "r.expiry"},
			{Field: "fname", Expr: "p.fname"},
			{Field: "lname", Expr: "p.lname"},
		},
		Key: []string{"vin", "regno"},
	},
	{
		Name: "users",
		From: "users",
		Columns: []querysql.Column{
			{Field: "uid", Expr: "uid"},
			{Field: "utype", Expr: "utype"},
			{Field: "person_id", Expr: "person_id"},
			{Field: "city", Expr: "city"},
		},
		Key: []string{"uid"},
	},
	{
		Name: "persons",
		From: "persons",
		Columns: []querysql.Column{
			{Field: "id", Expr: "id"},
			{Field: "fname", Expr: "fname"},
			{Field: "lname", Expr: "lname"},
			{Field: "bdate", Expr: "bdate"},
			{Field: "bplace", Expr: "bplace"},
			{Field: "address", Expr: "address"},
			{Field: "phone", Expr: "phone"},
		},
		Key: []string{"id"},
	},
	{
		Name: "births",
		From: `births b
			JOIN persons n ON n.id = b.person_id
			JOIN persons f ON f.id = b.father_id
			JOIN persons m ON m.id = b.mother_id`,
		Columns: []querysql.Column{
			{Field: "regno", Expr: "b.regno"},
			{Field: "fname", Expr: "n.fname"},
			{Field: "lname", Expr: "n.lname"},
			{Field: "regdate", Expr: "b.regdate"},
			{Field: "regplace", Expr: "b.regplace"},
			{Field: "gender", Expr: "b.gender"},
			{Field: "f_fname", Expr: "f.fname"},
			{Field: "f_lname", Expr: "f.lname"},
			{Field: "m_fname", Expr: "m.fname"},
			{Field: "m_lname", Expr: "m.lname"},
		},
		Key: []string{"regno"},
	},
	{
		Name: "marriages",
		From: `marriages mr
			JOIN persons a ON a.id = mr.p1_id
			JOIN persons b ON b.id = mr.p2_id`,
		Columns: []querysql.Column{
			{Field: "regno", Expr: "mr.regno"},
			{Field: "regdate", Expr: "mr.regdate"},
			{Field: "regplace", Expr: "mr.regplace"},
			{Field: "p1_fname", Expr: "a.fname"},
			{Field: "p1_lname", Expr: "a.lname"},
			{Field: "p2_fname", Expr: "b.fname"},
			{Field: "p2_lname", Expr: "b.lname"},
		},
		Key: []string{"regno"},
	},
	{
		Name: "vehicles",
		From: "vehicles",
		Columns: []querysql.Column{
			{Field: "vin", Expr: "vin"},
			{Field: "make", Expr: "make"},
			{Field: "model", Expr: "model"},
			{Field: "year", Expr: "year"},
			{Field: "color", Expr: "color"},
		},
		Key: []string{"vin"},
	},
	{
		Name: "registrations",
		From: `registrations r
			JOIN persons p ON p.id = r.owner_id`,
		Columns: []querysql.Column{
			{Field: "regno", Expr: "r.regno"},
			{Field: "regdate", Expr: "r.regdate"},
			{Field: "expiry", Expr: "r.expiry"},
			{Field: "plate", Expr: "r.plate"},
			{Field: "vin", Expr: "r.vin"},
			{Field: "fname", Expr: "p.fname"},
			{Field: "lname", Expr: "p.lname"},
		},
		Key: []string{"regno"},
	},
	{
		Name: "tickets",
		From: "tickets",
		Columns: []querysql.Column{
			{Field: "tno", Expr: "tno"},
			{Field: "regno", Expr: "regno"},
			{Field: "fine", Expr: "fine"},
			{Field: "violation", Expr: "violation"},
			{Field: "vdate", Expr: "vdate"},
		},
		Key: []string{"tno"},
	},
	{
		Name: "payments",
		From: "payments",
		Columns: []querysql.Column{
			{Field: "id", Expr: "id"},
			{Field: "tno", Expr: "tno"},
			{Field: "pdate", Expr: "pdate"},
			{Field: "amount", Expr: "amount"},
		},
		Key: []string{"id"},
	},
	{
		Name: "demerit_notices",
		From: `demerit_notices d
			JOIN persons p ON p.id = d.person_id`,
		Columns: []querysql.Column{
			{Field: "ddate", Expr: "d.ddate"},
			{Field: "fname", Expr: "p.fname"},
			{Field: "lname", Expr: "p.lname"},
			{Field: "points", Expr: "d.points"},
			{Field: "description", Expr: "d.description"},
			{Field: "person_id", Expr: "d.person_id"},
		},
		Key: []string{"ddate", "person_id"},
	},
}
