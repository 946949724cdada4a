/*
 * Copyright (c) 2025, TradeOps Software Ltd. (https://www.tradeops.io).
 *
 * TradeOps Software Ltd. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type AuthServerConfig struct {
	JWTAudience    string              `yaml:"jwt_audience"`
	JWTSigningKey  string              `yaml:"jwt_signing_key"`
	AdminUsername  string              `yaml:"admin_username"`
	AdminPassword  string              `yaml:"admin_password"`
	RequiredScopes map[string][]string `yaml:"required_scopes"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AttributeSourceConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type PricingConfig struct {
	DefaultCurrency string `yaml:"default_currency"`
}

type Config struct {
	Addr            AddrConfig            `yaml:"addr"`
	Log             LogConfig             `yaml:"log"`
	Auth            AuthConfig            `yaml:"auth"`
	AuthServer      AuthServerConfig      `yaml:"auth_server"`
	DataSource      DataSourceConfig      `yaml:"datasource"`
	AttributeSource AttributeSourceConfig `yaml:"attribute_source"`
	Pricing         PricingConfig         `yaml:"pricing"`
}
