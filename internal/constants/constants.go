package constants

const (
	ScryptCostParam   = 16 * 1024
	ScryptBlockSize   = 8
	ScryptParallelism = 1
	ScryptKeyLen      = 64
	ScryptSaltSize    = ScryptKeyLen

	// 128 * r * N for V plus scratch, so 1 GiB keeps N=2^20, r=8 out of reach.
	ScryptMaxMemory uint64 = 1 << 30

	ScryptMinCostParam  = 1 << 10
	ScryptMaxCostParam  = 1 << 20
	ScryptMinBlockSize  = 1
	ScryptMaxBlockSize  = 32
	ScryptMinParallel   = 1
	ScryptMaxParallel   = 16
	ScryptMinKeyLen     = 16
	ScryptMaxKeyLen     = 1024
	SalsaWords          = 16
	BlockWordsPerFactor = 2 * SalsaWords

	CredentialPrefix    = "SCRYPT"
	CredentialSeparator = ":"
	CredentialFields    = 6

	UsersConfFile   = "/opt/traffic_ops/install/data/json/users.json"
	UsersConfIndent = "\t"
	UsersDirMode    = 0755
	UsersFileMode   = 0600
)
