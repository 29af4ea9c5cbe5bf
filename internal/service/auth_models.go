package service

type RegisterInput struct {
	Username  string
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Password  string
}

type LoginInput struct {
	Identifier string
	Password   string
}

type TokenPair struct {
	AccessToken      string
	ExpiresIn        int64
	RefreshToken     string
	RefreshExpiresIn int64
}
