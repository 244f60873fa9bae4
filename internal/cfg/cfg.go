package cfg

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/okna-shop/pkg/e"
	"github.com/DRSN-tech/okna-shop/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Http     *HTTPConfig
	Session  *SessionCfg
	Redis    *RedisCfg
	Kafka    *KafkaCfg
	Catalog  *CatalogCfg
	Db       *PGDBCfg
	Notify   *NotifyCfg
	Contacts *ContactsCfg
}

type HTTPConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

type SessionCfg struct {
	Store           string        // memory | redis
	TTL             time.Duration // время жизни сессии без активности
	CookieName      string
	CleanupInterval time.Duration // период очистки просроченных сессий в памяти
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	TxRetries   int // количество попыток оптимистичной транзакции WATCH/MULTI
}

// KafkaCfg — канал уведомлений о добавлении в корзину. Пустой Brokers отключает отправку.
type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	MaxRetries        int
	RetryBackoff      time.Duration
	MaxBackoff        time.Duration
}

func (k *KafkaCfg) Enabled() bool {
	return len(k.Brokers) > 0
}

type CatalogCfg struct {
	Source string // static | postgres
}

type PGDBCfg struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MigrationsURL string
}

type NotifyCfg struct {
	QueueSize   int
	SendTimeout time.Duration
}

type ContactsCfg struct {
	Phone   string
	Email   string
	Address string
	Hours   []string
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Переменные из файла .env (если он есть) не перекрывают уже заданные в окружении.
func Load(log logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("failed to read .env: %v", err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session, err := loadSessionCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, err := loadCatalogCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var db *PGDBCfg
	if catalog.Source == CatalogSourcePostgres {
		db, err = loadPGDBCfg(log)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	notify, err := loadNotifyCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:     http,
		Session:  session,
		Redis:    redis,
		Kafka:    kafka,
		Catalog:  catalog,
		Db:       db,
		Notify:   notify,
		Contacts: loadContactsCfg(),
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
		defaultOrigins      = "*"
	)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:           getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		AllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", defaultOrigins)),
	}, nil
}

func loadSessionCfg(log logger.Logger) (*SessionCfg, error) {
	const (
		defaultTTL             = 24 * time.Hour
		defaultCookieName      = "okna_session"
		defaultCleanupInterval = 5 * time.Minute
	)

	store := getEnvOrDefault("SESSION_STORE", SessionStoreMemory)
	if store != SessionStoreMemory && store != SessionStoreRedis {
		return nil, e.Wrap(store, e.ErrUnknownSessionStore)
	}

	ttl, err := parseDurationEnv("SESSION_TTL", defaultTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_TTL")
		return nil, err
	}

	cleanup, err := parseDurationEnv("SESSION_CLEANUP_INTERVAL", defaultCleanupInterval)
	if err != nil {
		log.Errorf(err, "invalid SESSION_CLEANUP_INTERVAL")
		return nil, err
	}

	return &SessionCfg{
		Store:           store,
		TTL:             ttl,
		CookieName:      getEnvOrDefault("SESSION_COOKIE_NAME", defaultCookieName),
		CleanupInterval: cleanup,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultTxRetries    = 5
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	txRetries, err := parseIntEnv("REDIS_TX_RETRIES", defaultTxRetries)
	if err != nil {
		log.Errorf(err, "invalid REDIS_TX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		TxRetries:   txRetries,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultMaxRetries        = 3
		defaultRetryBackoff      = 200 * time.Millisecond
		defaultMaxBackoff        = 5 * time.Second
	)

	brokers := splitList(getEnv("KAFKA_BROKERS"))
	topic := getEnv("KAFKA_TOPIC")
	if len(brokers) > 0 && topic == "" {
		return nil, e.ErrKafkaTopicRequired
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	maxRetries, err := parseIntEnv("KAFKA_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("KAFKA_MAX_RETRIES", err)
	}

	backoff, err := parseDurationEnv("KAFKA_RETRY_BACKOFF", defaultRetryBackoff)
	if err != nil {
		return nil, e.Wrap("KAFKA_RETRY_BACKOFF", err)
	}

	maxBackoff, err := parseDurationEnv("KAFKA_MAX_BACKOFF", defaultMaxBackoff)
	if err != nil {
		return nil, e.Wrap("KAFKA_MAX_BACKOFF", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		MaxRetries:        maxRetries,
		RetryBackoff:      backoff,
		MaxBackoff:        maxBackoff,
	}, nil
}

func loadCatalogCfg() (*CatalogCfg, error) {
	source := getEnvOrDefault("CATALOG_SOURCE", CatalogSourceStatic)
	if source != CatalogSourceStatic && source != CatalogSourcePostgres {
		return nil, e.Wrap(source, e.ErrUnknownCatalogSource)
	}

	return &CatalogCfg{Source: source}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost          = "localhost"
		defaultPort          = "5432"
		defaultSSLMode       = "disable"
		defaultMigrationsURL = "file://db/migrations"
	)

	user := getEnv("POSTGRES_USER")
	password := getEnv("POSTGRES_PASSWORD")
	dbName := getEnv("POSTGRES_DB")
	if user == "" || password == "" || dbName == "" {
		log.Errorf(e.ErrPostgresCredsRequired, "missing postgres credentials")
		return nil, e.ErrPostgresCredsRequired
	}

	return &PGDBCfg{
		Host:          getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:          getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:          user,
		Password:      password,
		DBName:        dbName,
		SSLMode:       getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MigrationsURL: getEnvOrDefault("MIGRATIONS_URL", defaultMigrationsURL),
	}, nil
}

func loadNotifyCfg() (*NotifyCfg, error) {
	const (
		defaultQueueSize   = 256
		defaultSendTimeout = 5 * time.Second
	)

	queueSize, err := parseIntEnv("NOTIFY_QUEUE_SIZE", defaultQueueSize)
	if err != nil {
		return nil, e.Wrap("NOTIFY_QUEUE_SIZE", err)
	}

	sendTimeout, err := parseDurationEnv("NOTIFY_SEND_TIMEOUT", defaultSendTimeout)
	if err != nil {
		return nil, e.Wrap("NOTIFY_SEND_TIMEOUT", err)
	}

	return &NotifyCfg{
		QueueSize:   queueSize,
		SendTimeout: sendTimeout,
	}, nil
}

func loadContactsCfg() *ContactsCfg {
	const (
		defaultPhone   = "+7 (XXX) XXX-XX-XX"
		defaultEmail   = "info@windows-parts.ru"
		defaultAddress = "г. Москва, ул. Примерная, д. 1"
		defaultHours   = "Пн-Пт: 9:00 - 18:00;Сб-Вс: Выходной"
	)

	return &ContactsCfg{
		Phone:   getEnvOrDefault("CONTACTS_PHONE", defaultPhone),
		Email:   getEnvOrDefault("CONTACTS_EMAIL", defaultEmail),
		Address: getEnvOrDefault("CONTACTS_ADDRESS", defaultAddress),
		Hours:   strings.Split(getEnvOrDefault("CONTACTS_HOURS", defaultHours), ";"),
	}
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

// splitList разбирает список через запятую, пропуская пустые элементы.
func splitList(s string) []string {
	var res []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}

	return res
}
