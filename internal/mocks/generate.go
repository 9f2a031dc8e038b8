package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/playermeta --output domain/playermeta --outpkg playermetamock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/depthchart --output domain/depthchart --outpkg depthchartmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name IdentityFetcher --dir ../usecase --output usecase --outpkg usecasemock --filename identity_fetcher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name GameLogFetcher --dir ../usecase --output usecase --outpkg usecasemock --filename game_log_fetcher_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name JobQueue --dir ../usecase --output usecase --outpkg usecasemock --filename job_queue_mock.go
