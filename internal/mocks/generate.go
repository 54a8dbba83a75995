package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LearnedRepository --dir ../domain/mapping --output domain/mapping --outpkg mappingmock --filename learned_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name AttemptRepository --dir ../domain/mapping --output domain/mapping --outpkg mappingmock --filename attempt_repository_mock.go
