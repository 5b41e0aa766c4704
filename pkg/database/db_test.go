package database

import "testing"

func TestMySQLDSNForcesClientFoundRows(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{
			"root:root@tcp(127.0.0.1:3306)/storefront",
			"root:root@tcp(127.0.0.1:3306)/storefront?clientFoundRows=true",
		},
		{
			"root:root@tcp(127.0.0.1:3306)/storefront?parseTime=True",
			"root:root@tcp(127.0.0.1:3306)/storefront?parseTime=True&clientFoundRows=true",
		},
		{
			"root:root@tcp(127.0.0.1:3306)/storefront?clientFoundRows=true&parseTime=True",
			"root:root@tcp(127.0.0.1:3306)/storefront?clientFoundRows=true&parseTime=True",
		},
	}

	for _, tc := range cases {
		if got := mysqlDSN(tc.in); got != tc.want {
			t.Errorf("mysqlDSN(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
